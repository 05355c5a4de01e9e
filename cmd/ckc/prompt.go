package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aaronsb/claude-knowledge-converter/internal/analyze"
	"github.com/aaronsb/claude-knowledge-converter/internal/colorscheme"
)

// promptDefaults carries the estimated values offered at the interactive
// prompt.
type promptDefaults struct {
	TagLevel   int
	FileLevel  int
	TagScheme  colorscheme.Scheme
	FileScheme colorscheme.Scheme
	TagCounts  map[string]int
	FileCounts map[string]int
}

// promptChoices is what the user settled on.
type promptChoices struct {
	TagLevel   int
	FileLevel  int
	TagScheme  colorscheme.Scheme
	FileScheme colorscheme.Scheme
}

// promptAnalysisChoices runs the interactive loop: water levels first, then
// color schemes. Invalid input re-prompts; it is never coerced into a
// nearby valid value. Empty input accepts the offered default.
func promptAnalysisChoices(in io.Reader, out io.Writer, defaults promptDefaults) (promptChoices, error) {
	reader := bufio.NewReader(in)
	choices := promptChoices{
		TagScheme:  defaults.TagScheme,
		FileScheme: defaults.FileScheme,
	}

	fmt.Fprintf(out, "\nTag water level: labels need at least this many occurrences to be visible.\n")
	fmt.Fprintf(out, "Estimated level %d keeps %d of %d tags.\n",
		defaults.TagLevel,
		analyze.EligibleCount(defaults.TagCounts, defaults.TagLevel),
		len(defaults.TagCounts))
	level, err := promptWaterLevel(reader, out, "Tag water level", defaults.TagLevel)
	if err != nil {
		return choices, err
	}
	choices.TagLevel = level

	fmt.Fprintf(out, "\nEstimated file-pattern level %d keeps %d of %d patterns.\n",
		defaults.FileLevel,
		analyze.EligibleCount(defaults.FileCounts, defaults.FileLevel),
		len(defaults.FileCounts))
	level, err = promptWaterLevel(reader, out, "File-pattern water level", defaults.FileLevel)
	if err != nil {
		return choices, err
	}
	choices.FileLevel = level

	fmt.Fprint(out, colorscheme.FormatMenu())

	scheme, err := promptScheme(reader, out, "Tag color scheme", defaults.TagScheme)
	if err != nil {
		return choices, err
	}
	choices.TagScheme = scheme

	scheme, err = promptScheme(reader, out, "File-pattern color scheme", defaults.FileScheme)
	if err != nil {
		return choices, err
	}
	choices.FileScheme = scheme

	return choices, nil
}

// promptWaterLevel reads a threshold >= 1. Non-numeric or sub-1 input
// re-prompts until the answer is valid or input ends.
func promptWaterLevel(reader *bufio.Reader, out io.Writer, label string, def int) (int, error) {
	for {
		fmt.Fprintf(out, "%s [%d]: ", label, def)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return def, nil
			}
			return 0, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return def, nil
		}

		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 {
			fmt.Fprintf(out, "Please enter a whole number of 1 or more.\n")
			continue
		}
		return n, nil
	}
}

// promptScheme reads a scheme by menu number or name. Unknown input
// re-prompts rather than silently falling back.
func promptScheme(reader *bufio.Reader, out io.Writer, label string, def colorscheme.Scheme) (colorscheme.Scheme, error) {
	for {
		fmt.Fprintf(out, "%s (number or name) [%s]: ", label, def)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return def, nil
			}
			return "", err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return def, nil
		}

		if n, convErr := strconv.Atoi(line); convErr == nil {
			if scheme, ok := colorscheme.MenuChoice(n); ok {
				return scheme, nil
			}
			fmt.Fprintf(out, "No scheme with that number.\n")
			continue
		}

		if colorscheme.Known(line) {
			return colorscheme.Parse(line), nil
		}
		fmt.Fprintf(out, "Unknown scheme %q.\n", line)
	}
}
