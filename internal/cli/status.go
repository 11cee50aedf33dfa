package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show memory and model state",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant()
			if err != nil {
				return err
			}
			defer a.Close()

			memories, err := a.store.Count()
			if err != nil {
				return err
			}
			embeddings, err := a.store.EmbeddingCount()
			if err != nil {
				return err
			}

			dbPath, _ := a.cfg.DBPath()
			dbSize := a.database.SizeBytes(dbPath)

			fmt.Printf("\nProvider:   %s\n", a.cfg.DefaultModel)
			fmt.Printf("Chat model: %s\n", a.cfg.Ollama.ChatModel)
			fmt.Printf("Embedder:   %s\n", a.cfg.Ollama.EmbedModel)
			fmt.Printf("Memories:   %d (%d embeddings)\n", memories, embeddings)
			fmt.Printf("Database:   %s (%s)\n", dbPath, formatBytes(dbSize))
			fmt.Println()

			return nil
		},
	}
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
