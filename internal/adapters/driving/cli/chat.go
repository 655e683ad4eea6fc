package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/ragdex-labs/ragdex-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Launch an interactive chat grounded in the knowledge base.

Each question retrieves context and generates an answer with source
attribution. Requires ANTHROPIC_API_KEY.

Controls:
  Enter - Ask
  Esc   - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps the terminal readable if the TUI blows up.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	asker, err := newAsker()
	if err != nil {
		return err
	}

	return tui.Run(asker, cfg.Retrieval.TopK)
}
