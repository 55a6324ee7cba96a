// converter.go
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentDirs are the historical top-level directories that hold posts.
var contentDirs = []string{
	"chocolate", "code", "Fun_thing", "work", "life", "love",
	"Problem-Encounted-in-Blogging",
}

// rootSkipFiles are never articles when found at the repository root.
var rootSkipFiles = map[string]bool{
	"index.html":       true,
	"README.html":      true,
	"TOC.html":         true,
	"hello-world.html": true,
}

// Converter runs source documents through the extraction pipeline and
// accumulates a batch result.
type Converter struct {
	opts     ConverterOptions
	patterns []string
	dedup    *Deduplicator
}

// NewConverter creates a converter scoped to one run. excludePatterns come
// from the publish config and are shared with the branch router.
func NewConverter(opts ConverterOptions, excludePatterns []string) *Converter {
	return &Converter{
		opts:     opts,
		patterns: excludePatterns,
		dedup:    NewDeduplicator(),
	}
}

// ScanHTMLFiles discovers candidate documents: the known content
// directories recursively (skipping node_modules) plus root-level HTML
// files minus the fixed skip list. The result is deduplicated and sorted.
func ScanHTMLFiles(baseDir string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, dir := range contentDirs {
		root := filepath.Join(baseDir, dir)
		if _, err := os.Stat(root); err != nil {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() && d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".html") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", baseDir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || rootSkipFiles[name] || !strings.EqualFold(filepath.Ext(name), ".html") {
			continue
		}
		add(filepath.Join(baseDir, name))
	}

	sort.Strings(files)
	return files, nil
}

// ConvertFile runs one document through extract, classify, transduce,
// dedupe and assemble, reporting a tagged outcome. Failures are local to
// the document.
func (c *Converter) ConvertFile(path string) ConvertOutcome {
	data, err := os.ReadFile(path)
	if err != nil {
		return failed(fmt.Errorf("reading %s: %w", path, err))
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return failed(fmt.Errorf("parsing %s: %w", path, err))
	}

	meta := ExtractMetadata(doc, path, c.opts)
	if meta.Title == "" {
		return skipped("empty title: " + filepath.Base(path))
	}
	if ShouldExclude(path, meta.Title, c.patterns, c.opts) {
		return skipped("excluded: " + filepath.Base(path))
	}

	category, tags := Classify(path)
	if category == "uncategorized" && len(meta.Keywords) > 0 {
		tags = meta.Keywords
	}

	if !c.dedup.Accept(fileStem(path), category) {
		return skipped("duplicate: " + fileStem(path) + "-" + category)
	}

	content := Transduce(doc, c.opts)
	if content == "" {
		content = mineDescription(meta.Description, path)
	}
	if content == "" {
		return failed(fmt.Errorf("no usable content in %s", path))
	}

	return ConvertOutcome{
		Status: StatusConverted,
		Article: &Article{
			Title:       meta.Title,
			Date:        meta.Date,
			Tags:        tags,
			Category:    category,
			Description: meta.Description,
			Content:     content,
			SourceFile:  path,
		},
	}
}

// ConvertAll processes every candidate document sequentially and
// aggregates the batch result.
func (c *Converter) ConvertAll(files []string) *ConversionResult {
	result := &ConversionResult{TotalFiles: len(files)}

	log.Printf("Processing %d documents...", len(files))
	for i, file := range files {
		outcome := c.ConvertFile(file)
		switch outcome.Status {
		case StatusConverted:
			result.ConvertedFiles++
			result.Articles = append(result.Articles, outcome.Article)
			log.Printf("[%d/%d] ✓ %s", i+1, len(files), outcome.Article.Title)
		case StatusSkipped:
			result.SkippedFiles++
			log.Printf("[%d/%d] - %s", i+1, len(files), outcome.Reason)
		case StatusFailed:
			result.FailedFiles++
			result.Errors = append(result.Errors, outcome.Err.Error())
			log.Printf("[%d/%d] ✗ %v", i+1, len(files), outcome.Err)
		}
	}

	return result
}

// CategoryHistogram counts articles per category for the run summary.
func CategoryHistogram(articles []*Article) map[string]int {
	histogram := make(map[string]int)
	for _, article := range articles {
		histogram[article.Category]++
	}
	return histogram
}

func skipped(reason string) ConvertOutcome {
	return ConvertOutcome{Status: StatusSkipped, Reason: reason}
}

func failed(err error) ConvertOutcome {
	return ConvertOutcome{Status: StatusFailed, Err: err}
}
