// Package scan walks a vault of markdown files and fills a registry with
// tag and file-pattern occurrence counts. Scanning may fan out across
// workers; each worker owns a disjoint file subset and fills a private
// partial registry, and partials merge additively after all workers finish.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/aaronsb/claude-knowledge-converter/internal/logging"
	"github.com/aaronsb/claude-knowledge-converter/internal/registry"
)

// maxWorkers caps parallelism for memory efficiency.
const maxWorkers = 8

// Scanner scans a markdown corpus into a registry.
type Scanner struct {
	logger  *logging.Logger
	workers int
}

// NewScanner creates a scanner. workers <= 0 selects NumCPU capped at 8.
func NewScanner(logger *logging.Logger, workers int) *Scanner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return &Scanner{logger: logger, workers: workers}
}

// Result summarizes a corpus scan.
type Result struct {
	FilesScanned int
	FilesSkipped int
}

// Scan resets reg and repopulates it from every *.md file under root.
// The reset guarantees re-scanning an unchanged corpus yields identical
// counts. Unreadable files are logged and skipped; the scan never aborts
// for one bad file.
func (s *Scanner) Scan(root string, reg *registry.Registry) (Result, error) {
	reg.Reset()

	files, err := collectMarkdownFiles(root)
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("Scanning markdown corpus", map[string]interface{}{
		"root":    root,
		"files":   len(files),
		"workers": s.workers,
	})

	if len(files) == 0 {
		return Result{}, nil
	}

	workers := s.workers
	if workers > len(files) {
		workers = len(files)
	}

	partials := make([]*registry.Registry, workers)
	skipped := make([]int, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		partials[w] = registry.New(nil)
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			// Stride partitioning keeps subsets disjoint without chunk math
			for i := w; i < len(files); i += workers {
				if !s.scanFile(files[i], partials[w]) {
					skipped[w]++
				}
			}
		}(w)
	}
	wg.Wait()

	// Join barrier passed: additive merge of all partial tables
	totalSkipped := 0
	for w := 0; w < workers; w++ {
		reg.Merge(partials[w])
		totalSkipped += skipped[w]
	}

	return Result{
		FilesScanned: len(files) - totalSkipped,
		FilesSkipped: totalSkipped,
	}, nil
}

// scanFile records one file's tags and file pattern into reg. Returns
// false when the file could not be read.
func (s *Scanner) scanFile(path string, reg *registry.Registry) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("Skipping unreadable file", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return false
	}

	for _, tag := range ExtractTags(string(content)) {
		origin := registry.OriginKeyword
		if IsConversationTag(tag) {
			origin = registry.OriginConversation
		}
		reg.RecordTag(tag, origin)
	}

	if pattern := ExtractFilePattern(path); pattern != "" {
		reg.RecordFilePattern(pattern)
	}
	return true
}

func collectMarkdownFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are skipped, not fatal
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".ckc" || d.Name() == ".obsidian" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".md" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
