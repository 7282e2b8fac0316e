package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackchuka/mdrx/internal/derive"
	"github.com/jackchuka/mdrx/internal/docnode"
)

// NewDeriveCmd creates the derive command.
func NewDeriveCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "derive <markdown-file>",
		Short: "Derive a starter prescription from an existing Markdown document",
		Long:  "Analyze a Markdown document and generate a loose prescription matching its heading skeleton.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := CLIFromContext(cmd.Context())
			return runDerive(cli, args[0], outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runDerive(cli *CLI, file, outputFile string) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}

	tree, err := docnode.Parse(src)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}

	rx, err := derive.FromDocument(tree, cli.Config.PromptMarkers())
	if err != nil {
		return fmt.Errorf("deriving prescription: %w", err)
	}

	if outputFile == "" {
		fmt.Print(string(rx))
		return nil
	}

	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outputFile, rx, 0o644); err != nil {
		return fmt.Errorf("writing prescription: %w", err)
	}
	fmt.Printf("Prescription written to %s\n", outputFile)
	return nil
}
