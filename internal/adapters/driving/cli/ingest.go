package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var ingestExtensions []string

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest documents into the knowledge base",
	Long: `Ingest a document or a directory of documents.

Files are extracted, chunked and embedded into the vector store. A directory
is walked recursively; files that fail to parse are skipped and reported
without aborting the rest. Re-ingesting the same file overwrites its
previous chunks.

Supported formats: PDF, Markdown, HTML, plain text.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringSliceVarP(&ingestExtensions, "ext", "e", nil,
		"only ingest these extensions when walking a directory (e.g. pdf,md)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	ctx := cmd.Context()

	if !info.IsDir() {
		records, err := ingestService.IngestDocument(ctx, path)
		if err != nil {
			return err
		}
		if err := vectorStore.Upsert(ctx, records); err != nil {
			return err
		}
		cmd.Printf("Ingested %s: %d chunks\n", path, len(records))
		return nil
	}

	result, err := ingestService.IngestDirectory(ctx, path, ingestExtensions)
	if err != nil {
		return err
	}
	if len(result.Records) > 0 {
		if err := vectorStore.Upsert(ctx, result.Records); err != nil {
			return err
		}
	}

	cmd.Printf("Ingested %d/%d files (%d chunks)\n",
		result.Succeeded(), len(result.Files), len(result.Records))
	for _, f := range result.Files {
		if f.Err != nil {
			cmd.Printf("  failed: %s: %v\n", f.Path, f.Err)
		}
	}
	if len(result.Files) == 0 {
		exts := ingestExtensions
		if len(exts) == 0 {
			return nil
		}
		cmd.Printf("No files matched extensions: %s\n", strings.Join(exts, ", "))
	}
	return nil
}
