package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// exitWords end the chat loop when they appear in the input.
var exitWords = []string{"exit", "quit", "stop"}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long: `Start a read loop that routes each message to the right agent.

Say "exit", "quit", or "stop" to leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant()
			if err != nil {
				return err
			}
			defer a.Close()

			interactive := term.IsTerminal(int(os.Stdin.Fd()))
			if interactive {
				fmt.Println("NEXCAI is online. Say something...")
			}

			scanner := bufio.NewScanner(os.Stdin)
			for {
				if interactive {
					fmt.Print("You: ")
				}
				if !scanner.Scan() {
					break
				}

				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					continue
				}
				if isExit(text) {
					fmt.Println("Goodbye!")
					break
				}

				reply, err := a.handle(cmd.Context(), text)
				if err != nil {
					fmt.Fprintln(os.Stderr, "Error:", err)
					continue
				}
				fmt.Println("NEXCAI:", reply)
			}
			return scanner.Err()
		},
	}
}

func isExit(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range exitWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
