// extractor.go
package main

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Metadata holds the head-level fields pulled from one document.
type Metadata struct {
	Title       string
	Description string
	Date        time.Time
	Keywords    []string
}

var (
	pathDateRe    = regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})`)
	yearStemRe    = regexp.MustCompile(`^(\d{4})y$`)
	seasonStemRe  = regexp.MustCompile(`(?i)^(\d{4})(spring|autumn)$`)
	titlePrefixRe = regexp.MustCompile(`^\d+[.\-_]`)
)

// ExtractMetadata pulls title, description, date and keywords from the
// document head, falling back to filename conventions.
func ExtractMetadata(doc *goquery.Document, path string, opts ConverterOptions) Metadata {
	meta := Metadata{
		Title:       extractTitle(doc, path, opts),
		Description: truncateRunes(metaProperty(doc, "og:description"), 200),
		Date:        extractDate(doc, path, opts),
	}
	if keywords := metaName(doc, "keywords"); keywords != "" {
		for _, part := range strings.Split(keywords, ",") {
			if part = strings.TrimSpace(part); part != "" {
				meta.Keywords = append(meta.Keywords, part)
			}
		}
	}
	return meta
}

func metaProperty(doc *goquery.Document, property string) string {
	return doc.Find(`meta[property="` + property + `"]`).First().AttrOr("content", "")
}

func metaName(doc *goquery.Document, name string) string {
	return doc.Find(`meta[name="` + name + `"]`).First().AttrOr("content", "")
}

func extractTitle(doc *goquery.Document, path string, opts ConverterOptions) string {
	title := strings.ReplaceAll(metaProperty(doc, "og:title"), opts.SiteSuffix, "")
	if title != "" && title != opts.AuthorName {
		return title
	}
	return TitleFromFilename(path)
}

// TitleFromFilename derives a title from the file name: numeric prefix
// stripped, separators spaced out, each word capitalized.
func TitleFromFilename(path string) string {
	stem := titlePrefixRe.ReplaceAllString(fileStem(path), "")
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	words := strings.Fields(stem)
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// extractDate tries, in order: a date segment in the canonical URL, a bare
// year stem ("2015y"), a year+season stem, a date segment in the file path,
// and finally the fixed default. The first rule that matches wins.
func extractDate(doc *goquery.Document, path string, opts ConverterOptions) time.Time {
	if url := metaProperty(doc, "og:url"); url != "" {
		if date, ok := dateFromSegments(pathDateRe.FindStringSubmatch(url)); ok {
			return date
		}
	}

	stem := fileStem(path)
	if m := yearStemRe.FindStringSubmatch(stem); m != nil {
		year, _ := strconv.Atoi(m[1])
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if m := seasonStemRe.FindStringSubmatch(stem); m != nil {
		year, _ := strconv.Atoi(m[1])
		month := time.March
		if strings.EqualFold(m[2], "autumn") {
			month = time.September
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	}

	if date, ok := dateFromSegments(pathDateRe.FindStringSubmatch(filepath.ToSlash(path))); ok {
		return date
	}
	return opts.DefaultDate
}

func dateFromSegments(m []string) (time.Time, bool) {
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
