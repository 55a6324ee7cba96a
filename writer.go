// writer.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s\p{Han}-]`)
	slugCollapseRe = regexp.MustCompile(`[-\s]+`)
	descStripRe    = regexp.MustCompile(`[^\w\s\p{Han}.,;:!?-]`)
)

// Slugify keeps word characters, ideographs and hyphens, collapsing
// separator runs into single hyphens. Case is preserved.
func Slugify(title string) string {
	slug := slugStripRe.ReplaceAllString(title, "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// sanitizeDescription strips newlines and markup noise from the
// front-matter description line.
func sanitizeDescription(desc string) string {
	desc = strings.NewReplacer("\n", " ", "\r", "").Replace(desc)
	return strings.TrimSpace(descStripRe.ReplaceAllString(desc, ""))
}

// FrontMatter renders the fixed-field Hexo preamble. Tags serialize as a
// JSON-style array; the date carries a synthetic noon timestamp.
func FrontMatter(article *Article) string {
	tags := article.Tags
	if tags == nil {
		tags = []string{}
	}
	// Plain encoding keeps &, < and > literal in tag values.
	var tagsJSON bytes.Buffer
	enc := json.NewEncoder(&tagsJSON)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(tags)

	return fmt.Sprintf("---\ntitle: %s\ndate: %s 12:00:00\ntags: %s\ncategories: %s\ndescription: %s\n---\n",
		article.Title,
		article.Date.Format("2006-01-02"),
		strings.TrimRight(tagsJSON.String(), "\n"),
		article.Category,
		sanitizeDescription(article.Description))
}

// SaveArticles persists every article under outputDir, probing -1, -2, …
// suffixes on filename collisions. An unwritable destination is fatal to
// the run.
func SaveArticles(articles []*Article, outputDir string) (int, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	for _, article := range articles {
		if err := saveArticle(article, outputDir); err != nil {
			return 0, err
		}
	}
	return len(articles), nil
}

func saveArticle(article *Article, outputDir string) error {
	stem := article.Date.Format("2006-01-02") + "-" + Slugify(article.Title)
	path := filepath.Join(outputDir, stem+".md")
	for counter := 1; fileExists(path); counter++ {
		path = filepath.Join(outputDir, fmt.Sprintf("%s-%d.md", stem, counter))
	}

	content := FrontMatter(article) + article.Content
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Printf("Saved: %s", filepath.Base(path))
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
