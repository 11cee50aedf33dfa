package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRecallCmd() *cobra.Command {
	var (
		topK int
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "recall <query>",
		Short: "Search long-term memory",
		Long: `Retrieve the stored facts most relevant to a query.

Examples:
  nexcai recall "where do I live?"
  nexcai recall weather --top-k 5
  nexcai recall --all`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant()
			if err != nil {
				return err
			}
			defer a.Close()

			if all {
				facts, err := a.store.All()
				if err != nil {
					return fmt.Errorf("list memory: %w", err)
				}
				printFacts(facts)
				return nil
			}

			k := topK
			if k <= 0 {
				k = a.cfg.Memory.TopK
			}

			facts, err := a.store.Search(cmd.Context(), strings.Join(args, " "), k)
			if err != nil {
				return fmt.Errorf("search memory: %w", err)
			}

			printFacts(facts)
			return nil
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "maximum number of facts to return (default from config)")
	cmd.Flags().BoolVar(&all, "all", false, "list every stored fact, oldest first")

	return cmd
}

func printFacts(facts []string) {
	if len(facts) == 0 {
		fmt.Println("No matching memories.")
		return
	}
	for _, fact := range facts {
		fmt.Printf("- %s\n", fact)
	}
}
