package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackchuka/mdrx/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and describe mdrx's own configuration",
	}
	cmd.AddCommand(newConfigSchemaCmd())
	return cmd
}

func newConfigSchemaCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Generate JSON Schema for .mdrx.yml files",
		Long: `Generate a JSON Schema that can be used for editor autocomplete and
validation of .mdrx.yml configuration files.

Add the following comment at the top of .mdrx.yml to use it with
yaml-language-server:

  # yaml-language-server: $schema=https://raw.githubusercontent.com/jackchuka/mdrx/main/config.schema.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaBytes, err := config.GenerateSchema()
			if err != nil {
				return fmt.Errorf("generating schema: %w", err)
			}

			if outputFile == "" {
				fmt.Println(string(schemaBytes))
				return nil
			}

			if dir := filepath.Dir(outputFile); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating directory %s: %w", dir, err)
				}
			}
			if err := os.WriteFile(outputFile, schemaBytes, 0o644); err != nil {
				return fmt.Errorf("writing schema: %w", err)
			}
			fmt.Printf("JSON Schema written to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
