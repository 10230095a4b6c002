package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const watchDebounce = 150 * time.Millisecond

func (c *cli) newWatchCmd() *cobra.Command {
	var debugPath string
	cmd := &cobra.Command{
		Use:   "watch <surface> <script>",
		Short: "Replay a session whenever the surface or script changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.watch(cmd.Context(), args[0], args[1], debugPath)
		},
	}
	cmd.Flags().StringVar(&debugPath, "debug", "", "write the final surface state as JSON")
	return cmd
}

// watch 监听文件所在目录而不是文件本身，编辑器保存时常以重命名替换文件。
func (c *cli) watch(ctx context.Context, surfacePath, scriptPath, debugPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	targets := map[string]bool{}
	for _, p := range []string{surfacePath, scriptPath} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
		}
	}

	replay := func() {
		if err := c.play(ctx, surfacePath, scriptPath, debugPath); err != nil {
			c.logger.Error("replay failed", "err", err)
		}
	}
	replay()
	c.logger.Info("watching for changes", "surface", surfacePath, "script", scriptPath)

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename) {
				c.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
				timer.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Error("fsnotify watcher error", "err", err)
		case <-timer.C:
			replay()
		}
	}
}
