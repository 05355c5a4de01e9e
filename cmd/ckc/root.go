package main

import (
	"github.com/spf13/cobra"

	"github.com/aaronsb/claude-knowledge-converter/internal/version"
)

var (
	// vaultFlag is the CLI --vault flag value
	vaultFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ckc",
	Short: "CKC - Claude Knowledge Converter",
	Long: `CKC (Claude Knowledge Converter) turns archived chat exports (Claude or
ChatGPT) into an Obsidian-ready knowledge vault, then analyzes the vault's tag
and file-name frequencies to generate a graph visualization color configuration.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("CKC version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "",
		"Vault root directory (default: current directory)")
}
