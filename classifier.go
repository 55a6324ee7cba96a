// classifier.go
package main

import (
	"path/filepath"
	"regexp"
	"strings"
)

// CategoryRule maps a path substring to a category and its tag set.
type CategoryRule struct {
	Match    string
	Submatch string
	Category string
	Tags     []string
}

// categoryRules mirrors the historical directory layout of the blog.
// Rules are evaluated top to bottom, first match wins; sub-rules precede
// their parent.
var categoryRules = []CategoryRule{
	{Match: "chocolate", Category: "chocolate", Tags: []string{"chocolate", "life", "感悟"}},
	{Match: "code", Submatch: "leetcode", Category: "leetcode", Tags: []string{"leetcode", "algorithm", "code"}},
	{Match: "code", Submatch: "python", Category: "python", Tags: []string{"python", "code"}},
	{Match: "code", Submatch: "mindmap", Category: "mindmap", Tags: []string{"mindmap", "study"}},
	{Match: "code", Category: "code", Tags: []string{"code", "tech"}},
	{Match: "work", Category: "work", Tags: []string{"work"}},
	{Match: "love", Category: "love", Tags: []string{"love"}},
	{Match: "fun_thing", Category: "fun", Tags: []string{"fun", "life"}},
	{Match: "problem", Category: "problem", Tags: []string{"problem", "tech"}},
}

// Classify infers the category and tag set from the source path.
func Classify(path string) (string, []string) {
	p := strings.ToLower(filepath.ToSlash(path))
	for _, rule := range categoryRules {
		if !strings.Contains(p, rule.Match) {
			continue
		}
		if rule.Submatch != "" && !strings.Contains(p, rule.Submatch) {
			continue
		}
		return rule.Category, append([]string(nil), rule.Tags...)
	}
	return "uncategorized", []string{"blog"}
}

// ShouldExclude reports whether the document is navigational chrome, lives
// in the deprecated directory, or matches a configured exclude pattern.
// Exclusion is a skip, not an error.
func ShouldExclude(path, title string, patterns []string, opts ConverterOptions) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, keyword := range opts.SkipKeywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	// Compare path segments so relative paths ("life/...") are caught too.
	if segment := strings.Trim(opts.DeprecatedSegment, "/"); segment != "" {
		for _, part := range strings.Split(filepath.ToSlash(path), "/") {
			if part == segment {
				return true
			}
		}
	}
	return matchesExcludePattern(filepath.Base(path), title, patterns)
}

// matchesExcludePattern applies glob-style patterns from the publish
// config: * widens to .*, matching is case-insensitive against both the
// file name and the title.
func matchesExcludePattern(filename, title string, patterns []string) bool {
	for _, pattern := range patterns {
		expr := strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, ".*")
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			continue
		}
		if re.MatchString(filename) || re.MatchString(title) {
			return true
		}
	}
	return false
}
