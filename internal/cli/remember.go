package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRememberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remember <statement>",
		Short: "Store a fact in long-term memory",
		Long: `Offer a statement to the long-term memory. The memory filter decides
whether it is worth keeping, and near-duplicates of stored facts are
skipped.

Examples:
  nexcai remember "I live in Munich."
  nexcai remember "My favorite weather is rainy."`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statement := strings.Join(args, " ")

			a, err := newAssistant()
			if err != nil {
				return err
			}
			defer a.Close()

			before, err := a.store.Count()
			if err != nil {
				return err
			}
			if err := a.store.Add(cmd.Context(), statement); err != nil {
				return fmt.Errorf("store memory: %w", err)
			}
			after, err := a.store.Count()
			if err != nil {
				return err
			}

			if after == before {
				fmt.Println("Not stored (not memorable, or a near-duplicate of an existing memory).")
				return nil
			}
			fmt.Printf("Remembered: %q\n", statement)
			return nil
		},
	}
}
