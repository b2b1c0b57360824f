package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"askbox/internal/application/port/input"
	"askbox/internal/application/port/output"
	"askbox/internal/infrastructure/browser/rod"
	"askbox/internal/infrastructure/env"
	"askbox/internal/infrastructure/web"

	"github.com/spf13/cobra"
)

func newBrowserCommand(opts *globalOptions) *cobra.Command {
	var (
		addr        string
		headless    bool
		snapshotDir string
		browserBin  string
	)

	cmd := &cobra.Command{
		Use:   "browser",
		Short: "Open the ask page in a browser driven by this process",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("headless") {
				headless = opts.env.GetBool(env.KeyBrowserHeadless, headless)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := opts.container()
			if err != nil {
				return err
			}
			defer c.Close()

			srv, err := web.NewServer(web.Config{}, c.Logger)
			if err != nil {
				return err
			}
			url, err := srv.Listen(addr)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			cfg := rod.DefaultConfig()
			cfg.Headless = headless
			cfg.Bin = browserBin
			browser, err := rod.NewBrowserAdapter(ctx, cfg, c.Logger.WithField("component", "browser"))
			if err != nil {
				return err
			}
			defer browser.Close()

			handler := c.NewHandler(browser.Prompt(), browser.Response(), browser.Button())

			err = browser.Bind(web.DispatchBinding, func() {
				// The page's own button handler never cancels a request, so
				// neither does the binding.
				task := handler.Dispatch(context.Background())
				if snapshotDir != "" {
					go saveSnapshot(task, browser, snapshotDir, c.Logger)
				}
			})
			if err != nil {
				return err
			}

			if err := browser.Open(ctx, url); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Page open at %s, press Ctrl+C to quit\n", url)

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:0", "page server listen address")
	cmd.Flags().BoolVar(&headless, "headless", false, "run the browser without a window")
	cmd.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "save a page screenshot after every ask")
	cmd.Flags().StringVar(&browserBin, "browser-bin", "", "browser executable (default: found or downloaded by rod)")
	return cmd
}

func saveSnapshot(task input.Task, browser *rod.BrowserAdapter, dir string, log output.LoggerPort) {
	outcome := task.Wait()

	shot, err := browser.Snapshot(context.Background())
	if err != nil {
		log.Error("Snapshot failed", "error", err)
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Error("Snapshot dir failed", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.%s", time.Now().Format("2006-01-02_15-04-05.000"), outcome, shot.Format)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, shot.Data, 0o644); err != nil {
		log.Error("Snapshot write failed", "path", path, "error", err)
		return
	}
	log.Info("Snapshot saved", "path", path, "width", shot.Width, "height", shot.Height)
}
