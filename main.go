package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var (
	baseDir       string
	outputDir     string
	configPath    string
	recommendOnly bool
	distribute    bool
	distributeDir string
)

var rootCmd = &cobra.Command{
	Use:   "html2hexo",
	Short: "Convert legacy HTML posts into Hexo-ready Markdown",
	Long: `Batch pipeline that extracts metadata from historical HTML blog posts,
transduces them into front-matter Markdown, recommends a rendering theme
for the batch, and optionally distributes posts into branch-scoped site
trees.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&baseDir, "dir", ".", "Base directory holding the HTML sources")
	rootCmd.Flags().StringVar(&outputDir, "output", "source/_posts", "Directory for generated Markdown posts")
	rootCmd.Flags().StringVar(&configPath, "config", "publish-config.yaml", "Path to the publish configuration")
	rootCmd.Flags().BoolVar(&recommendOnly, "recommend", false, "Only analyze content and print theme recommendations")
	rootCmd.Flags().BoolVar(&distribute, "distribute", false, "Distribute persisted posts into branch trees")
	rootCmd.Flags().StringVar(&distributeDir, "distribute-dir", "distributed", "Base directory for branch trees")
}

func run(cmd *cobra.Command, args []string) error {
	if err := ensurePublishConfig(configPath); err != nil {
		return err
	}
	config, configErr := LoadPublishConfig(configPath)
	if configErr != nil {
		log.Printf("Warning: publish config unavailable: %v", configErr)
	}

	var patterns []string
	if config != nil {
		patterns = config.ExcludePatterns
	}

	files, err := ScanHTMLFiles(baseDir)
	if err != nil {
		return err
	}

	converter := NewConverter(DefaultConverterOptions(), patterns)
	result := converter.ConvertAll(files)
	logSummary(result)

	scores := RecommendThemes(result.Articles)
	PrintRecommendations(result.Articles, scores)

	if recommendOnly {
		return nil
	}

	saved, err := SaveArticles(result.Articles, outputDir)
	if err != nil {
		return err
	}
	log.Printf("Saved %d posts to %s", saved, outputDir)

	var repo Repository = NoopRepository{}
	if saved > 0 {
		if err := repo.Commit(fmt.Sprintf("Update %d posts from HTML", saved)); err != nil {
			log.Printf("Warning: commit failed: %v", err)
		}
	}

	if distribute {
		if configErr != nil {
			return fmt.Errorf("cannot distribute: %w", configErr)
		}
		router, err := NewRouter(config)
		if err != nil {
			return err
		}
		distribution, err := router.Distribute(outputDir, distributeDir)
		if err != nil {
			return err
		}
		for _, b := range config.Branches {
			log.Printf("  %s: %d posts", b.Key, len(distribution[b.Key]))
		}
	}

	return nil
}

func logSummary(result *ConversionResult) {
	log.Printf("Total: %d, converted: %d, skipped: %d, failed: %d",
		result.TotalFiles, result.ConvertedFiles, result.SkippedFiles, result.FailedFiles)

	histogram := CategoryHistogram(result.Articles)
	categories := make([]string, 0, len(histogram))
	for category := range histogram {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		log.Printf("  %s: %d posts", category, histogram[category])
	}

	limit := 10
	if len(result.Errors) < limit {
		limit = len(result.Errors)
	}
	for _, msg := range result.Errors[:limit] {
		log.Printf("  error: %s", msg)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
