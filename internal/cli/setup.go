package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexcai/nexcai/internal/calendar"
	"github.com/nexcai/nexcai/internal/config"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Connect Google Calendar",
		Long: `Run the OAuth flow for the Google Calendar API and cache the token.

Requires client_id and client_secret in the [calendar] section of the
config file. The flow is headless-friendly: open the printed URL in
any browser and paste the authorization code back here.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Calendar.ClientID == "" || cfg.Calendar.ClientSecret == "" {
				path, _ := config.Path()
				return fmt.Errorf("calendar client_id/client_secret not configured in %s", path)
			}

			oauthCfg := calendar.OAuthConfig(cfg.Calendar.ClientID, cfg.Calendar.ClientSecret)

			fmt.Println("Open this URL in your browser, allow access, then paste the code here:")
			fmt.Println()
			fmt.Println("  " + oauthCfg.AuthCodeURL("state"))
			fmt.Println()
			fmt.Print("Authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			token, err := oauthCfg.Exchange(cmd.Context(), code)
			if err != nil {
				return fmt.Errorf("exchange authorization code: %w", err)
			}

			tokenPath, err := cfg.TokenPath()
			if err != nil {
				return err
			}
			if err := calendar.SaveToken(tokenPath, token); err != nil {
				return err
			}

			fmt.Println("\nGoogle Calendar connected. Token saved to", tokenPath)
			return nil
		},
	}
}
