package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Bulk-import facts from a text file",
		Long: `Read a text file with one fact per line and offer each to the
long-term memory. The memory filter and the duplicate check apply to
every line, so unremarkable or repeated lines are skipped.

Example:
  nexcai import facts.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			var lines []string
			scanner := bufio.NewScanner(file)
			for scanner.Scan() {
				if line := strings.TrimSpace(scanner.Text()); line != "" {
					lines = append(lines, line)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			if len(lines) == 0 {
				fmt.Println("Nothing to import.")
				return nil
			}

			a, err := newAssistant()
			if err != nil {
				return err
			}
			defer a.Close()

			bar := progressbar.NewOptions(len(lines),
				progressbar.OptionSetDescription("  Importing facts"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)

			stored, skipped, failed := 0, 0, 0
			for _, line := range lines {
				before, countErr := a.store.Count()
				if countErr != nil {
					return countErr
				}
				if addErr := a.store.Add(cmd.Context(), line); addErr != nil {
					failed++
					_ = bar.Add(1)
					continue
				}
				after, countErr := a.store.Count()
				if countErr != nil {
					return countErr
				}
				if after > before {
					stored++
				} else {
					skipped++
				}
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			fmt.Printf("Imported %d of %d facts (%d skipped, %d failed)\n",
				stored, len(lines), skipped, failed)
			return nil
		},
	}
}
