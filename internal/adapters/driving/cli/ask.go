package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragdex-labs/ragdex-cli/internal/core/services"
)

var (
	askTopK    int
	askSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question grounded in the knowledge base",
	Long: `Retrieve relevant context from the knowledge base and generate an
answer with the configured Anthropic model. Requires ANTHROPIC_API_KEY.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of context chunks (default from config)")
	askCmd.Flags().BoolVar(&askSources, "sources", true, "print the sources the answer was grounded on")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	asker, err := newAsker()
	if err != nil {
		return err
	}

	topK := askTopK
	if topK <= 0 {
		topK = cfg.Retrieval.TopK
	}

	answer, err := asker.Ask(cmd.Context(), args[0], topK)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Text)

	if askSources && len(answer.Hits) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, source := range services.Sources(answer.Hits) {
			cmd.Printf("  [%d] %s\n", i+1, source)
		}
	}
	return nil
}
