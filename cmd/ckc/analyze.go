package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aaronsb/claude-knowledge-converter/internal/analyze"
	"github.com/aaronsb/claude-knowledge-converter/internal/colorscheme"
	ckcerrors "github.com/aaronsb/claude-knowledge-converter/internal/errors"
	"github.com/aaronsb/claude-knowledge-converter/internal/graphcfg"
	"github.com/aaronsb/claude-knowledge-converter/internal/registry"
	"github.com/aaronsb/claude-knowledge-converter/internal/scan"
)

var (
	analyzeTagLevel     int
	analyzeFileLevel    int
	analyzeTagScheme    string
	analyzeFileScheme   string
	analyzeBudget       int
	analyzeMinCount     int
	analyzeWorkers      int
	analyzeExclusions   string
	analyzeTemplate     string
	analyzeOutput       string
	analyzeReport       string
	analyzeReportFormat string
	analyzeInteractive  bool
	analyzeDryRun       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the vault and generate the graph color configuration",
	Long: `Scan every markdown file in the vault, count tag and file-name-pattern
frequencies, select the most relevant labels under the slot budget, and merge
colorized query groups into the graph.json template.

Water levels (minimum occurrence thresholds) are estimated from the corpus
distribution when not supplied. With --interactive, estimated levels and
schemes are offered as defaults and can be adjusted at a prompt.

Examples:
  ckc analyze
  ckc analyze --tag-level 25 --file-level 3
  ckc analyze --tag-scheme viridis --file-scheme heatmap
  ckc analyze --interactive
  ckc analyze --dry-run --report-format yaml`,
	Run: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeTagLevel, "tag-level", 0, "Tag water level (0 = estimate from corpus)")
	analyzeCmd.Flags().IntVar(&analyzeFileLevel, "file-level", 0, "File-pattern water level (0 = estimate from corpus)")
	analyzeCmd.Flags().StringVar(&analyzeTagScheme, "tag-scheme", "", "Color scheme for tag groups")
	analyzeCmd.Flags().StringVar(&analyzeFileScheme, "file-scheme", "", "Color scheme for file-pattern groups")
	analyzeCmd.Flags().IntVar(&analyzeBudget, "budget", 0, "Total color group slot budget")
	analyzeCmd.Flags().IntVar(&analyzeMinCount, "min-count", 0, "Minimum occurrences before a label is considered")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Scan worker count (0 = NumCPU, capped at 8)")
	analyzeCmd.Flags().StringVar(&analyzeExclusions, "exclusions", "", "Tag exclusions file path")
	analyzeCmd.Flags().StringVar(&analyzeTemplate, "template", "", "graph.json template path")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "Output path (default: overwrite the template)")
	analyzeCmd.Flags().StringVar(&analyzeReport, "report", "", "Analysis report path (default: .ckc/analysis_report.<fmt>)")
	analyzeCmd.Flags().StringVar(&analyzeReportFormat, "report-format", "json", "Report format (json, yaml)")
	analyzeCmd.Flags().BoolVarP(&analyzeInteractive, "interactive", "i", false, "Prompt for water levels and schemes")
	analyzeCmd.Flags().BoolVar(&analyzeDryRun, "dry-run", false, "Print the report without writing graph.json")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	vaultRoot := mustGetVaultRoot()
	cfg := mustLoadConfig(vaultRoot)
	logger := newLogger(cfg)

	exclusionsPath := analyzeExclusions
	if exclusionsPath == "" {
		exclusionsPath = cfg.Analyze.ExclusionsPath
	}
	exclusions, err := registry.LoadExclusions(resolveUnder(vaultRoot, exclusionsPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading exclusions: %v\n", err)
		os.Exit(1)
	}

	workers := analyzeWorkers
	if workers <= 0 {
		workers = cfg.Analyze.Workers
	}

	reg := registry.New(exclusions)
	scanner := scan.NewScanner(logger, workers)
	result, err := scanner.Scan(vaultRoot, reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning vault: %v\n", err)
		os.Exit(1)
	}
	if result.FilesScanned == 0 {
		err := ckcerrors.New(ckcerrors.VaultEmpty,
			fmt.Sprintf("no markdown files found under %s", vaultRoot), nil)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	minCount := analyzeMinCount
	if minCount <= 0 {
		minCount = cfg.Analyze.MinCount
	}
	budget := analyzeBudget
	if budget <= 0 {
		budget = cfg.Analyze.SlotBudget
	}

	filteredTags := reg.FilteredTags(minCount)
	filteredFiles := reg.FilteredFilePatterns(minCount)

	tagLevel := analyzeTagLevel
	if tagLevel <= 0 {
		tagLevel = analyze.EstimateTagLevel(filteredTags)
	}
	fileLevel := analyzeFileLevel
	if fileLevel <= 0 {
		fileLevel = analyze.EstimateFileLevel(filteredFiles)
	}

	aliases, err := colorscheme.LoadAliases(filepath.Join(ckcDir(vaultRoot), "scheme_aliases.toml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading scheme aliases: %v\n", err)
		os.Exit(1)
	}

	tagScheme := resolveScheme(analyzeTagScheme, cfg.Analyze.TagScheme, aliases)
	fileScheme := resolveScheme(analyzeFileScheme, cfg.Analyze.FileScheme, aliases)

	if analyzeInteractive {
		choice, err := promptAnalysisChoices(os.Stdin, os.Stdout, promptDefaults{
			TagLevel:   tagLevel,
			FileLevel:  fileLevel,
			TagScheme:  tagScheme,
			FileScheme: fileScheme,
			TagCounts:  filteredTags,
			FileCounts: filteredFiles,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		tagLevel = choice.TagLevel
		fileLevel = choice.FileLevel
		tagScheme = choice.TagScheme
		fileScheme = choice.FileScheme
	}

	params := analyze.Params{
		TagLevel:   tagLevel,
		FileLevel:  fileLevel,
		TagScheme:  string(tagScheme),
		FileScheme: string(fileScheme),
		SlotBudget: budget,
		MinCount:   minCount,
	}
	analysis := analyze.Run(reg, params)
	report := analyze.BuildReport(reg, analysis)

	logger.Info("Analysis complete", map[string]interface{}{
		"files_scanned": result.FilesScanned,
		"files_skipped": result.FilesSkipped,
		"tag_level":     tagLevel,
		"file_level":    fileLevel,
		"tag_groups":    len(analysis.Tags),
		"file_groups":   len(analysis.Files),
	})

	if analyzeDryRun {
		encoded, err := report.Encode(analyzeReportFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(encoded))
		return
	}

	templatePath := analyzeTemplate
	if templatePath == "" {
		templatePath = cfg.Analyze.TemplatePath
	}
	templatePath = resolveUnder(vaultRoot, templatePath)
	outPath := analyzeOutput
	if outPath == "" {
		outPath = templatePath
	} else {
		outPath = resolveUnder(vaultRoot, outPath)
	}

	groups := graphcfg.BuildColorGroups(analysis, tagScheme, fileScheme)
	if err := graphcfg.Write(templatePath, outPath, groups); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reportPath := analyzeReport
	if reportPath == "" {
		ext := analyzeReportFormat
		if ext == "" {
			ext = "json"
		}
		reportPath = filepath.Join(ckcDir(vaultRoot), "analysis_report."+ext)
	} else {
		reportPath = resolveUnder(vaultRoot, reportPath)
	}
	encoded, err := report.Encode(analyzeReportFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(reportPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(reportPath, encoded, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d color groups (%d tags, %d file patterns) to %s\n",
		len(groups), len(analysis.Tags), len(analysis.Files), outPath)
	fmt.Printf("Report: %s\n", reportPath)
}

// resolveScheme picks the flag value over the config default and resolves
// aliases. Unknown names fall back to rainbow inside Parse.
func resolveScheme(flagValue, configValue string, aliases map[string]colorscheme.Scheme) colorscheme.Scheme {
	name := flagValue
	if name == "" {
		name = configValue
	}
	return colorscheme.Resolve(name, aliases)
}
