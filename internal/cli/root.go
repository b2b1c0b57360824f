// Package cli implements the askbox commands: a terminal front-end, a
// remote-controlled browser front-end and the page server.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"askbox/internal/application/port/output"
	"askbox/internal/di"
	"askbox/internal/infrastructure/backend/httpask"
	"askbox/internal/infrastructure/env"
	"askbox/internal/infrastructure/logger"

	"github.com/spf13/cobra"
)

// errNotAnswered makes the process exit non-zero without printing anything
// beyond what the display region already shows.
var errNotAnswered = errors.New("question was not answered")

type globalOptions struct {
	endpoint string
	logLevel string
	logFile  string
	env      output.ConfigPort
}

func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "askbox",
		Short:         "Ask a question-answering backend from a terminal or a browser page",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.env = env.NewEnvService()
			opts.applyEnv(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().StringVar(&opts.endpoint, "endpoint", httpask.DefaultEndpoint, "backend /ask endpoint")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", logger.DefaultPath, `log destination: a file path, "stdout" or "stderr"`)

	root.AddCommand(newAskCommand(opts))
	root.AddCommand(newBrowserCommand(opts))
	root.AddCommand(newServeCommand(opts))

	return root
}

// applyEnv fills options from the environment unless set on the command line.
func (o *globalOptions) applyEnv(cmd *cobra.Command) {
	e := o.env
	flags := cmd.Flags()
	if !flags.Changed("endpoint") {
		o.endpoint = e.GetWithDefault(env.KeyEndpoint, o.endpoint)
	}
	if !flags.Changed("log-level") {
		o.logLevel = e.GetWithDefault(env.KeyLogLevel, o.logLevel)
	}
	if !flags.Changed("log-file") {
		o.logFile = e.GetWithDefault(env.KeyLogFile, o.logFile)
	}
}

func (o *globalOptions) container() (*di.Container, error) {
	return di.NewContainer(di.Config{
		Endpoint: o.endpoint,
		LogLevel: o.logLevel,
		LogFile:  o.logFile,
	})
}

func Execute() {
	if err := NewRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		if !errors.Is(err, errNotAnswered) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
