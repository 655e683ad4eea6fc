package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [source]",
	Short: "Delete all records from one source",
	Long: `Delete every record whose source matches the given value: a file
name ("attention.pdf"), a URL, or a paper id ("semantic_scholar:<id>").
Deleting a source that has no records is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	source := args[0]
	if err := vectorStore.DeleteBySource(cmd.Context(), source); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	cmd.Printf("Deleted records with source %q\n", source)
	return nil
}
