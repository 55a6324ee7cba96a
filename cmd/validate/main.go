// Command validate checks that every persisted post carries a published
// front-matter field, inserting "published: true" in fix mode.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
)

var (
	publishedFieldRe = regexp.MustCompile(`(?m)^published:`)
	delimiterRe      = regexp.MustCompile(`(?m)^---$`)
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: validate <check|fix> <posts-directory>")
	}

	mode := os.Args[1]
	postsDir := os.Args[2]
	if mode != "check" && mode != "fix" {
		log.Fatalf("Unknown mode %q", mode)
	}

	missing, fixed, err := validatePosts(postsDir, mode == "fix")
	if err != nil {
		log.Fatal(err)
	}

	if mode == "check" && len(missing) > 0 {
		log.Printf("Found %d posts missing the published field:", len(missing))
		for _, path := range missing {
			log.Printf("  - %s", path)
		}
		log.Println("Run with 'fix' to add them")
		os.Exit(1)
	}
	log.Printf("All posts validated (%d fixed)", len(fixed))
}

func validatePosts(postsDir string, fix bool) (missing, fixed []string, err error) {
	err = filepath.WalkDir(postsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // continue on unreadable entries
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		changed, err := processPost(path, fix)
		if err != nil {
			log.Printf("✗ %s: %v", path, err)
			return nil
		}
		if changed {
			if fix {
				fixed = append(fixed, path)
				log.Printf("✓ fixed: %s", filepath.Base(path))
			} else {
				missing = append(missing, path)
			}
		}
		return nil
	})
	return missing, fixed, err
}

// processPost reports whether the post lacks a published field, rewriting
// it in fix mode. Posts without parsable front matter are errors.
func processPost(path string, fix bool) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var matter map[string]interface{}
	if _, err := frontmatter.Parse(bytes.NewReader(content), &matter); err != nil {
		return false, fmt.Errorf("parsing front matter: %w", err)
	}
	if publishedFieldRe.Match(content) {
		return false, nil
	}
	if !fix {
		return true, nil
	}

	// Insert before the closing front-matter delimiter.
	delims := delimiterRe.FindAllIndex(content, 2)
	if len(delims) < 2 {
		return false, fmt.Errorf("no closing front-matter delimiter")
	}
	pos := delims[1][0]
	fixedContent := append([]byte{}, content[:pos]...)
	fixedContent = append(fixedContent, []byte("published: true\n")...)
	fixedContent = append(fixedContent, content[pos:]...)

	return true, os.WriteFile(path, fixedContent, 0644)
}
