package cli

import (
	"context"
	"os"
	"strings"

	"askbox/internal/domain/entity"
	"askbox/internal/infrastructure/userinteraction"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newAskCommand(opts *globalOptions) *cobra.Command {
	var spinner bool

	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask one question and print the answer",
		Long:  "Ask one question and print the answer. Without arguments the question is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.container()
			if err != nil {
				return err
			}
			defer c.Close()

			consoleOpts := []userinteraction.ConsoleOption{
				userinteraction.WithLogger(c.Logger),
				userinteraction.WithSpinner(spinner && stdoutIsTerminal(cmd)),
			}
			if len(args) > 0 {
				consoleOpts = append(consoleOpts, userinteraction.WithQuestion(strings.Join(args, " ")))
			}
			console := userinteraction.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout(), consoleOpts...)

			outcome := c.NewHandler(console, console, console).Handle(context.Background())
			if outcome != entity.OutcomeAnswered {
				return errNotAnswered
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&spinner, "spinner", true, "show a spinner while waiting (terminal only)")
	return cmd
}

func stdoutIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
