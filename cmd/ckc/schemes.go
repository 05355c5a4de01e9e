package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronsb/claude-knowledge-converter/internal/colorscheme"
)

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "List available color schemes with terminal previews",
	Long: `List the color schemes available for tag and file-pattern groups.

When the terminal supports 256 colors, each scheme is shown with a row of
color swatches sampling its gradient.`,
	Run: runSchemes,
}

func init() {
	rootCmd.AddCommand(schemesCmd)
}

func runSchemes(cmd *cobra.Command, args []string) {
	fmt.Print(colorscheme.FormatMenu())
}
