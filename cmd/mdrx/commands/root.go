package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackchuka/mdrx/internal/config"
)

// cliContextKey is the context key for the CLI's resolved Config.
type cliContextKey struct{}

// CLI holds the options that apply across subcommands: the loaded
// .mdrx.yml (or its defaults) plus any global flag overrides.
type CLI struct {
	Config       *config.Config
	Prescription string
	OutputFormat string
}

// CLIFromContext retrieves the CLI options carried on cmd's context.
func CLIFromContext(ctx context.Context) *CLI {
	if c, ok := ctx.Value(cliContextKey{}).(*CLI); ok {
		return c
	}
	return &CLI{Config: config.Default(), OutputFormat: "text"}
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cli := &CLI{}

	cmd := &cobra.Command{
		Use:   "mdrx",
		Short: "A prescription-based Markdown document validator",
		Long: `mdrx validates Markdown documents against prescriptions: Markdown files
annotated with prompt markers that declare which parts of a document are
mandatory, optional, or repeatable.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cli.Config = cfg
			ctx := context.WithValue(cmd.Context(), cliContextKey{}, cli)
			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cli.Prescription, "prescription", "", "prescription file to validate against")
	cmd.PersistentFlags().StringVar(&cli.OutputFormat, "format", "text", "output format: text")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewDeriveCmd())
	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func loadConfig() (*config.Config, error) {
	path, err := config.Find(".")
	if err != nil {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, ErrViolationsFound) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
