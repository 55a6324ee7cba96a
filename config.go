// config.go
package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Embedded default publish configuration, written on first run so users
// have something to edit.
//
//go:embed config/publish-config.yaml
var defaultPublishConfig string

// Branch describes one output partition of the routed site tree.
type Branch struct {
	Key         string   `yaml:"-"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Categories  []string `yaml:"categories"`
	Tags        []string `yaml:"tags"`
}

// BranchList preserves the declaration order of the branches mapping.
// Routing is first-match-wins, so order matters.
type BranchList []Branch

// UnmarshalYAML decodes the branches mapping node pairwise to keep the
// order the file declares.
func (bl *BranchList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("branches: expected a mapping node, got kind %d", value.Kind)
	}
	out := make(BranchList, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var b Branch
		if err := value.Content[i+1].Decode(&b); err != nil {
			return fmt.Errorf("branches[%s]: %w", value.Content[i].Value, err)
		}
		b.Key = value.Content[i].Value
		out = append(out, b)
	}
	*bl = out
	return nil
}

// ThemeConfig maps branch names to theme ids.
type ThemeConfig struct {
	Default  string            `yaml:"default"`
	Branches map[string]string `yaml:"branches"`
}

// PublishConfig drives the branch router and supplies the global exclude
// patterns. Read-only for the duration of a run.
type PublishConfig struct {
	Branches        BranchList  `yaml:"branches"`
	ExcludePatterns []string    `yaml:"exclude_patterns"`
	Theme           ThemeConfig `yaml:"theme"`
}

// ThemeFor returns the theme id configured for a branch, falling back to
// the default theme.
func (c *PublishConfig) ThemeFor(branch string) string {
	if theme, ok := c.Theme.Branches[branch]; ok && theme != "" {
		return theme
	}
	return c.Theme.Default
}

// LoadPublishConfig reads and validates the publish configuration.
func LoadPublishConfig(path string) (*PublishConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading publish config: %w", err)
	}

	var config PublishConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing publish config %s: %w", path, err)
	}
	if len(config.Branches) == 0 {
		return nil, fmt.Errorf("publish config %s: no branches configured", path)
	}
	return &config, nil
}

// ensurePublishConfig writes the embedded default config if none exists.
func ensurePublishConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(defaultPublishConfig), 0644); err != nil {
		return fmt.Errorf("writing default publish config: %w", err)
	}
	return nil
}

// ConverterOptions holds the selector and keyword lists the converter uses.
// The historical source corpus is inconsistent, so these are configuration
// rather than constants.
type ConverterOptions struct {
	// ContentSelectors is tried in order; the first match becomes the
	// content root.
	ContentSelectors []string
	// ChromeSelectors name the regions stripped from the body when no
	// content selector matches.
	ChromeSelectors []string
	// SkipKeywords mark navigational pages by file name substring.
	SkipKeywords []string
	// DeprecatedSegment excludes an entire legacy directory.
	DeprecatedSegment string
	// SiteSuffix is stripped from metadata titles.
	SiteSuffix string
	// AuthorName is the sentinel that must never become a title.
	AuthorName string
	// SuppressedHeadings are dropped from the transduced body.
	SuppressedHeadings []string
	// DefaultDate is used when no date rule applies.
	DefaultDate time.Time
}

// DefaultConverterOptions returns the lists matching the historical blog
// layout.
func DefaultConverterOptions() ConverterOptions {
	return ConverterOptions{
		ContentSelectors: []string{
			"div.article-inner",
			"article",
			"div.post-content",
			"div.article-entry",
			"div.entry-content",
			"main",
			"div.content",
			"div.article",
		},
		ChromeSelectors: []string{
			".left-col", ".overlay", ".mid-col", ".right-col",
			"header", "footer", "nav",
			".header-menu", ".article-meta",
			".page-reward", ".ds-thread", ".duoshuo",
		},
		SkipKeywords:       []string{"toc", "readme", "index", "hello-world"},
		DeprecatedSegment:  "/life/",
		SiteSuffix:         " | Ante Liu",
		AuthorName:         "Ante Liu",
		SuppressedHeadings: []string{"Ante Liu", "Thanks For Watching！"},
		DefaultDate:        time.Date(2019, time.August, 1, 0, 0, 0, 0, time.UTC),
	}
}
