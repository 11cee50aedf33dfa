package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexcai/nexcai/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Create the config file populated with the defaults, ready to edit.

The file lands at ~/.config/nexcai/config.toml. An existing config is
never overwritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}

			if err := config.Save(config.Default()); err != nil {
				return err
			}
			fmt.Println("Wrote", path)
			return nil
		},
	}
}
