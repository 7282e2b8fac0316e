package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackchuka/mdrx/internal/config"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize an mdrx configuration in your project",
		Long:  `Creates a .mdrx.yml file with a commented default configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}
}

func runInit() error {
	if _, err := os.Stat(config.FileName); err == nil {
		fmt.Printf("Configuration file already exists at %s\n", config.FileName)
		return nil
	}

	if err := config.WriteDefault(config.FileName); err != nil {
		return fmt.Errorf("creating configuration file: %w", err)
	}

	fmt.Printf("✓ Created %s with default configuration\n", config.FileName)
	return nil
}
