package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question and print the reply",
		Long: `Route one question to the right agent without entering the chat loop.

Examples:
  nexcai ask "what's the weather in Berlin tomorrow?"
  nexcai ask "create a dentist appointment on Friday at 10"
  nexcai ask "where do I live?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			a, err := newAssistant()
			if err != nil {
				return err
			}
			defer a.Close()

			reply, err := a.handle(cmd.Context(), query)
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		},
	}
}
