package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackchuka/mdrx/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mdrx",
		Long:  `Print the version number of mdrx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version.Info())
			return nil
		},
	}
}
