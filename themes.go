// themes.go
package main

import (
	"log"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ThemeFeature names one capability a rendering theme can support.
type ThemeFeature string

const (
	FeatureCodeHighlight ThemeFeature = "code_highlight"
	FeatureResponsive    ThemeFeature = "responsive"
	FeatureSEO           ThemeFeature = "seo"
	FeatureDarkMode      ThemeFeature = "dark_mode"
	FeatureMathJax       ThemeFeature = "mathjax"
	FeatureGallery       ThemeFeature = "gallery"
	FeatureSearch        ThemeFeature = "search"
	FeatureComment       ThemeFeature = "comment"
)

// featureOrder fixes the iteration order for needs derivation and
// reporting.
var featureOrder = []ThemeFeature{
	FeatureCodeHighlight, FeatureResponsive, FeatureSEO, FeatureDarkMode,
	FeatureMathJax, FeatureGallery, FeatureSearch, FeatureComment,
}

// ThemeProfile is a static catalog entry, compiled into the program.
type ThemeProfile struct {
	ID          string
	Name        string
	Description string
	Features    map[ThemeFeature]bool
	Suitability int
	OfficialURL string
}

// themeCatalog ranks in declaration order on score ties.
var themeCatalog = []ThemeProfile{
	{
		ID:          "next",
		Name:        "NexT",
		Description: "最受欢迎的Hexo主题，功能完善",
		Features: map[ThemeFeature]bool{
			FeatureCodeHighlight: true, FeatureResponsive: true,
			FeatureSEO: true, FeatureDarkMode: true, FeatureMathJax: true,
			FeatureGallery: true, FeatureSearch: true, FeatureComment: true,
		},
		Suitability: 95,
		OfficialURL: "https://theme-next.js.org/",
	},
	{
		ID:          "butterfly",
		Name:        "Butterfly",
		Description: "美观且功能强大的主题",
		Features: map[ThemeFeature]bool{
			FeatureCodeHighlight: true, FeatureResponsive: true,
			FeatureSEO: true, FeatureDarkMode: true, FeatureMathJax: true,
			FeatureGallery: true, FeatureSearch: true, FeatureComment: true,
		},
		Suitability: 92,
		OfficialURL: "https://butterfly.js.org/",
	},
	{
		ID:          "fluid",
		Name:        "Fluid",
		Description: "简洁优雅的主题，适合技术博客",
		Features: map[ThemeFeature]bool{
			FeatureCodeHighlight: true, FeatureResponsive: true,
			FeatureSEO: true, FeatureDarkMode: true, FeatureMathJax: true,
			FeatureSearch: true, FeatureComment: true,
		},
		Suitability: 90,
		OfficialURL: "https://hexo.fluid-dev.com/",
	},
	{
		ID:          "stun",
		Name:        "Stun",
		Description: "极简主义主题",
		Features: map[ThemeFeature]bool{
			FeatureCodeHighlight: true, FeatureResponsive: true,
			FeatureSEO: true, FeatureMathJax: true,
			FeatureSearch: true, FeatureComment: true,
		},
		Suitability: 85,
		OfficialURL: "https://github.com/liuyib/hexo-theme-stun",
	},
	{
		ID:          "cactus",
		Name:        "Cactus",
		Description: "轻量级极简主题",
		Features: map[ThemeFeature]bool{
			FeatureCodeHighlight: true, FeatureResponsive: true,
			FeatureSEO: true,
		},
		Suitability: 80,
		OfficialURL: "https://github.com/probberechts/hexo-theme-cactus",
	},
}

// ContentFeatures counts per-article detections over one batch.
type ContentFeatures struct {
	HasCode      int
	HasImages    int
	HasMath      int
	LongArticles int
	TechContent  int
}

var (
	codeMarkerRe  = regexp.MustCompile(`<code>|\bfunction\b|\bdef\b|\bclass\b`)
	imageMarkerRe = regexp.MustCompile(`<img|\.png|\.jpg|\.gif`)
	mathMarkerRe  = regexp.MustCompile(`\$\$|\\frac|\\sum|\\int`)
)

// technicalCategories drive the dark-mode need.
var technicalCategories = map[string]bool{
	"code": true, "leetcode": true, "python": true, "problem": true,
}

// AnalyzeContent aggregates content features across the batch. Markdown
// constructs (fences, code spans, images) are detected on the goldmark
// AST; raw-HTML remnants and math markers by pattern.
func AnalyzeContent(articles []*Article) ContentFeatures {
	var features ContentFeatures
	parser := goldmark.DefaultParser()

	for _, article := range articles {
		lower := strings.ToLower(article.Content)
		root := parser.Parse(text.NewReader([]byte(article.Content)))
		hasCode, hasImage := scanMarkdownTree(root)

		if hasCode || codeMarkerRe.MatchString(lower) {
			features.HasCode++
		}
		if hasImage || imageMarkerRe.MatchString(lower) {
			features.HasImages++
		}
		if mathMarkerRe.MatchString(lower) {
			features.HasMath++
		}
		if utf8.RuneCountInString(article.Content) > 1000 {
			features.LongArticles++
		}
		if technicalCategories[article.Category] {
			features.TechContent++
		}
	}
	return features
}

func scanMarkdownTree(root ast.Node) (hasCode, hasImage bool) {
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.CodeSpan:
			hasCode = true
		case *ast.Image:
			hasImage = true
		}
		return ast.WalkContinue, nil
	})
	return hasCode, hasImage
}

// ThemeNeeds is the boolean needs vector derived from batch aggregates.
type ThemeNeeds map[ThemeFeature]bool

// DeriveNeeds thresholds each aggregate fraction. SEO is always needed;
// search and comment depend on batch size, not ratios.
func DeriveNeeds(features ContentFeatures, total int) ThemeNeeds {
	n := float64(total)
	if total == 0 {
		n = 1
	}
	return ThemeNeeds{
		FeatureCodeHighlight: float64(features.HasCode)/n > 0.3,
		FeatureResponsive:    float64(features.LongArticles)/n > 0.5,
		FeatureSEO:           true,
		FeatureDarkMode:      float64(features.TechContent)/n > 0.3,
		FeatureMathJax:       float64(features.HasMath)/n > 0.1,
		FeatureGallery:       float64(features.HasImages)/n > 0.3,
		FeatureSearch:        total > 10,
		FeatureComment:       total > 5,
	}
}

// ThemeScore is one ranked recommendation with the matched and missing
// needed capabilities for explainability.
type ThemeScore struct {
	ThemeID         string
	Name            string
	Description     string
	Score           float64
	MatchedFeatures []ThemeFeature
	MissingFeatures []ThemeFeature
	OfficialURL     string
}

// ScoreThemes scores the catalog against a needs vector:
// match ratio over the needed capabilities weighted 70, base suitability
// weighted 0.3, rounded to one decimal. Ties keep catalog order.
func ScoreThemes(needs ThemeNeeds) []ThemeScore {
	scores := make([]ThemeScore, 0, len(themeCatalog))
	for _, theme := range themeCatalog {
		var matched, missing []ThemeFeature
		needed := 0
		for _, feature := range featureOrder {
			if !needs[feature] {
				continue
			}
			needed++
			if theme.Features[feature] {
				matched = append(matched, feature)
			} else {
				missing = append(missing, feature)
			}
		}

		score := 0.0
		if needed > 0 {
			score = float64(len(matched)) / float64(needed) * 70
		}
		score += float64(theme.Suitability) * 0.3

		scores = append(scores, ThemeScore{
			ThemeID:         theme.ID,
			Name:            theme.Name,
			Description:     theme.Description,
			Score:           math.Round(score*10) / 10,
			MatchedFeatures: matched,
			MissingFeatures: missing,
			OfficialURL:     theme.OfficialURL,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// RecommendThemes analyzes the batch and ranks the theme catalog.
func RecommendThemes(articles []*Article) []ThemeScore {
	return ScoreThemes(DeriveNeeds(AnalyzeContent(articles), len(articles)))
}

// PrintRecommendations logs the feature analysis and the top themes.
func PrintRecommendations(articles []*Article, scores []ThemeScore) {
	features := AnalyzeContent(articles)

	log.Printf("Content features: code=%d images=%d math=%d long=%d tech=%d",
		features.HasCode, features.HasImages, features.HasMath,
		features.LongArticles, features.TechContent)

	limit := 5
	if len(scores) < limit {
		limit = len(scores)
	}
	for i, score := range scores[:limit] {
		log.Printf("[%d] %s - %.1f (%s)", i+1, score.Name, score.Score, score.OfficialURL)
		if len(score.MatchedFeatures) > 0 {
			log.Printf("    matched: %s", joinFeatures(score.MatchedFeatures))
		}
		if len(score.MissingFeatures) > 0 {
			log.Printf("    missing: %s", joinFeatures(score.MissingFeatures))
		}
	}
}

func joinFeatures(features []ThemeFeature) string {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
