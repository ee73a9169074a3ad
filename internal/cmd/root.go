package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"svw.info/patrol/internal/config"
	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/generator"
	"svw.info/patrol/internal/infrastructure/storage"
	"svw.info/patrol/internal/logging"
	"svw.info/patrol/internal/patrol"
	"svw.info/patrol/internal/usecase"
	"svw.info/patrol/internal/validator"
)

var rootCmd = &cobra.Command{
	Use:   "patrol",
	Short: "Simulate a guard patrol on a grid map",
	Long: `patrol walks a guard across a text map, turning right at every obstacle,
and answers two questions: how many distinct cells the guard visits before
leaving the map, and how many single extra obstacles would trap it in a loop.`,
	SilenceUsage: true,
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "config file (default is $HOME/.config/patrol/patrol.yaml)")
	pf.String("log-level", "info", "debug|info|warn|error")
	pf.String("log-format", "text", "text|json")
	pf.String("strategy", "path", "obstruction candidates: path|brute")
	pf.Int("workers", 0, "parallel obstruction trials (0 = GOMAXPROCS)")
	pf.String("data-dir", "./data", "directory for saved reports")

	_ = viper.BindPFlag("config", pf.Lookup("config"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("enumerator.strategy", pf.Lookup("strategy"))
	_ = viper.BindPFlag("enumerator.workers", pf.Lookup("workers"))
	_ = viper.BindPFlag("storage.dir", pf.Lookup("data-dir"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("patrol")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(config.ConfigDir())
	}

	viper.SetEnvPrefix("PATROL")
	// e.g. PATROL_ENUMERATOR_WORKERS for enumerator.workers
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// a missing config file is fine, a broken one is not
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "patrol: reading config: %v\n", err)
		}
	}
}

// app bundles what every subcommand needs.
type app struct {
	cfg *config.Config
	svc *usecase.Service
	ctx context.Context
}

// newApp loads configuration and wires the service graph.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	strategy, _ := domain.ParseStrategy(cfg.Enumerator.Strategy)

	sim := patrol.NewSimulator()
	svc := usecase.NewService(
		sim,
		patrol.NewEnumerator(sim, strategy, cfg.Enumerator.Workers),
		generator.NewRandomGenerator(),
		validator.New(),
		storage.NewOS(cfg.Storage.Dir),
	)
	svc.Strategy = strategy

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return &app{cfg: cfg, svc: svc, ctx: logging.WithLogger(ctx, logger)}, nil
}
