package cmd

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	httpadapter "svw.info/patrol/internal/adapters/http"
	"svw.info/patrol/internal/logging"
	"svw.info/patrol/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the patrol JSON API and a small web page",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r.WithContext(logging.WithLogger(r.Context(), logger)))
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

// newMux wires the API and the embedded page.
func newMux(a *app) *http.ServeMux {
	tmpl := web.Templates()
	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := map[string]any{"Strategy": a.cfg.Enumerator.Strategy}
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", data); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	httpadapter.New(a.svc).Register(mux)
	return mux
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	logger := logging.FromContext(a.ctx)

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           requestLogger(logger, newMux(a)),
		ReadHeaderTimeout: a.cfg.Server.ReadHeaderTimeout,
	}
	go func() {
		<-a.ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening",
		"addr", a.cfg.Server.Addr,
		"persist", a.cfg.Storage.Dir,
		"strategy", a.cfg.Enumerator.Strategy,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
		return err
	}
	return nil
}
