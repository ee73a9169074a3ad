package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"svw.info/patrol/internal/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-solve a map every time the file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 100 * time.Millisecond

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	logger := logging.FromContext(a.ctx)
	target, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	// watch the directory: editors often replace the file rather than write it
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	w := cmd.OutOrStdout()
	solve := func() {
		data, err := os.ReadFile(target)
		if err != nil {
			logger.Warn("read failed", "file", target, "err", err)
			return
		}
		res, err := a.solveOne(args[0], string(data), true, true)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", args[0], err)
			return
		}
		fmt.Fprintf(w, "%s: visited=%d obstructions=%d\n", args[0], *res.Visited, *res.Obstructions)
	}
	solve()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-a.ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			solve()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}
