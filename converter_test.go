package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTestFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

const springPost = `<html><head>
<meta property="og:title" content="Spring Notes | Ante Liu">
<meta property="og:description" content="A season of notes.">
</head><body><div class="article-entry">
<h2>March</h2><p>Plenty of things happened.</p>
</div></body></html>`

func TestConvertFileProducesArticle(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, filepath.Join("chocolate", "2016spring.html"), springPost)

	c := NewConverter(DefaultConverterOptions(), nil)
	outcome := c.ConvertFile(path)

	if outcome.Status != StatusConverted {
		t.Fatalf("Status = %v, want converted (reason=%q err=%v)",
			outcome.Status, outcome.Reason, outcome.Err)
	}

	article := outcome.Article
	if article.Title != "Spring Notes" {
		t.Errorf("Title = %q, want %q", article.Title, "Spring Notes")
	}
	if article.Category != "chocolate" {
		t.Errorf("Category = %q, want %q", article.Category, "chocolate")
	}
	if want := time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC); !article.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", article.Date, want)
	}
	if want := "## March\n\nPlenty of things happened."; article.Content != want {
		t.Errorf("Content = %q, want %q", article.Content, want)
	}
	if article.SourceFile != path {
		t.Errorf("SourceFile = %q, want %q", article.SourceFile, path)
	}
}

func TestConvertFileSkipsExcluded(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, filepath.Join("chocolate", "TOC.html"), springPost)

	c := NewConverter(DefaultConverterOptions(), nil)
	outcome := c.ConvertFile(path)

	if outcome.Status != StatusSkipped {
		t.Errorf("Status = %v, want skipped", outcome.Status)
	}
}

func TestConvertFileMissingIsFailed(t *testing.T) {
	c := NewConverter(DefaultConverterOptions(), nil)
	outcome := c.ConvertFile(filepath.Join(t.TempDir(), "nope.html"))

	if outcome.Status != StatusFailed {
		t.Errorf("Status = %v, want failed", outcome.Status)
	}
}

func TestConvertFileNoContentIsFailed(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, filepath.Join("work", "empty.html"),
		`<html><head></head><body></body></html>`)

	c := NewConverter(DefaultConverterOptions(), nil)
	outcome := c.ConvertFile(path)

	if outcome.Status != StatusFailed {
		t.Fatalf("Status = %v, want failed", outcome.Status)
	}
	if !strings.Contains(outcome.Err.Error(), "no usable content") {
		t.Errorf("Err = %v, want no-usable-content", outcome.Err)
	}
}

func TestConvertAllSkipsDuplicates(t *testing.T) {
	dir := t.TempDir()
	first := writeTestFile(t, dir, filepath.Join("chocolate", "a", "notes.html"), springPost)
	second := writeTestFile(t, dir, filepath.Join("chocolate", "b", "notes.html"), springPost)

	c := NewConverter(DefaultConverterOptions(), nil)
	result := c.ConvertAll([]string{first, second})

	if result.ConvertedFiles != 1 {
		t.Errorf("ConvertedFiles = %d, want 1", result.ConvertedFiles)
	}
	if result.SkippedFiles != 1 {
		t.Errorf("SkippedFiles = %d, want 1", result.SkippedFiles)
	}
	if result.FailedFiles != 0 {
		t.Errorf("FailedFiles = %d, want 0", result.FailedFiles)
	}
}

func TestConvertAllFailedMatchesErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeTestFile(t, dir, filepath.Join("chocolate", "good.html"), springPost)
	empty := writeTestFile(t, dir, filepath.Join("work", "empty.html"),
		`<html><head></head><body></body></html>`)

	c := NewConverter(DefaultConverterOptions(), nil)
	result := c.ConvertAll([]string{good, empty})

	if result.FailedFiles != len(result.Errors) {
		t.Errorf("FailedFiles = %d, Errors = %d, want equal",
			result.FailedFiles, len(result.Errors))
	}
	if result.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", result.TotalFiles)
	}
	if len(result.Articles) != result.ConvertedFiles {
		t.Errorf("len(Articles) = %d, ConvertedFiles = %d, want equal",
			len(result.Articles), result.ConvertedFiles)
	}
}

func TestScanHTMLFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, filepath.Join("chocolate", "a.html"), "x")
	writeTestFile(t, dir, filepath.Join("code", "deep", "b.html"), "x")
	writeTestFile(t, dir, filepath.Join("code", "node_modules", "skip.html"), "x")
	writeTestFile(t, dir, "extra.html", "x")
	writeTestFile(t, dir, "index.html", "x")
	writeTestFile(t, dir, "notes.txt", "x")

	files, err := ScanHTMLFiles(dir)
	if err != nil {
		t.Fatalf("ScanHTMLFiles: %v", err)
	}

	want := []string{
		filepath.Join(dir, "chocolate", "a.html"),
		filepath.Join(dir, "code", "deep", "b.html"),
		filepath.Join(dir, "extra.html"),
	}
	if len(files) != len(want) {
		t.Fatalf("ScanHTMLFiles = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestCategoryHistogram(t *testing.T) {
	articles := []*Article{
		{Category: "chocolate"},
		{Category: "chocolate"},
		{Category: "work"},
	}
	histogram := CategoryHistogram(articles)
	if histogram["chocolate"] != 2 || histogram["work"] != 1 {
		t.Errorf("histogram = %v, want chocolate:2 work:1", histogram)
	}
}
