package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"askbox/internal/infrastructure/env"
	"askbox/internal/infrastructure/web"

	"github.com/spf13/cobra"
)

const defaultPageAddr = "127.0.0.1:8080"

func newServeCommand(opts *globalOptions) *cobra.Command {
	var (
		addr   string
		assets string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ask page",
		Long:  "Serve the ask page. With --assets pointing at a directory holding ask.wasm and wasm_exec.js the page runs the WebAssembly handler.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = opts.env.GetWithDefault(env.KeyPageAddr, addr)
			}

			c, err := opts.container()
			if err != nil {
				return err
			}
			defer c.Close()

			srv, err := web.NewServer(web.Config{AssetsDir: assets, AccessLog: cmd.ErrOrStderr()}, c.Logger)
			if err != nil {
				return err
			}

			url, err := srv.Listen(addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s\n", url)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultPageAddr, "listen address")
	cmd.Flags().StringVar(&assets, "assets", "", "directory with ask.wasm and wasm_exec.js")
	return cmd
}
