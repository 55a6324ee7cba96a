// router.go
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/template"

	"github.com/adrg/frontmatter"
)

// defaultBranch receives posts no configured branch claims.
const defaultBranch = "personal"

// branchSkeleton is the conventional Hexo site-source layout created per
// branch.
var branchSkeleton = []string{
	filepath.Join("source", "_posts"),
	"themes",
	"scaffolds",
	filepath.Join("source", "images"),
	filepath.Join("source", "css"),
}

// postMatter is the subset of front matter the router reads. Tags appear
// both as flow sequences and bare scalars in historical posts.
type postMatter struct {
	Title      string      `yaml:"title"`
	Tags       flexStrings `yaml:"tags"`
	Categories string      `yaml:"categories"`
}

// flexStrings accepts either a YAML sequence or a single scalar.
type flexStrings []string

func (f *flexStrings) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*f = list
		return nil
	}
	var single string
	if err := unmarshal(&single); err != nil {
		return err
	}
	if single != "" {
		*f = flexStrings{single}
	}
	return nil
}

// Router partitions persisted posts into branch-scoped site trees.
type Router struct {
	config *PublishConfig
}

// NewRouter validates the publish config for the routing pass. A missing
// or empty config is fatal to this pass only.
func NewRouter(config *PublishConfig) (*Router, error) {
	if config == nil || len(config.Branches) == 0 {
		return nil, fmt.Errorf("publish config missing or has no branches")
	}
	return &Router{config: config}, nil
}

// Route decides the destination branch for one post: exclusion patterns
// first, then each configured branch in declaration order by category and
// then by tag intersection. No match falls through to the default branch.
func (r *Router) Route(filename string, matter postMatter) (branch string, excluded bool) {
	if matchesExcludePattern(filename, matter.Title, r.config.ExcludePatterns) {
		return "", true
	}
	for _, b := range r.config.Branches {
		if containsString(b.Categories, matter.Categories) {
			return b.Key, false
		}
		for _, tag := range matter.Tags {
			if containsString(b.Tags, tag) {
				return b.Key, false
			}
		}
	}
	return defaultBranch, false
}

// Distribute copies every post under postsDir into its branch tree beneath
// baseDir and writes per-branch site configuration. It runs after the
// conversion pass, so it only sees finalized posts. Copies and stub writes
// overwrite existing files.
func (r *Router) Distribute(postsDir, baseDir string) (map[string][]string, error) {
	posts, err := filepath.Glob(filepath.Join(postsDir, "*.md"))
	if err != nil {
		return nil, err
	}
	if err := r.createBranchTrees(baseDir); err != nil {
		return nil, err
	}
	log.Printf("Distributing %d posts...", len(posts))

	distribution := make(map[string][]string)
	for _, path := range posts {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		var matter postMatter
		if _, err := frontmatter.Parse(bytes.NewReader(data), &matter); err != nil {
			log.Printf("✗ unparsable front matter in %s: %v", filepath.Base(path), err)
			continue
		}

		branch, excluded := r.Route(filepath.Base(path), matter)
		if excluded {
			log.Printf("- excluded: %s", filepath.Base(path))
			continue
		}

		// The default branch may not be configured, so its tree may not
		// exist yet.
		dest := filepath.Join(baseDir, branch, "source", "_posts", filepath.Base(path))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return nil, fmt.Errorf("creating posts directory for %s: %w", branch, err)
		}
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return nil, fmt.Errorf("copying %s to %s: %w", path, branch, err)
		}
		distribution[branch] = append(distribution[branch], filepath.Base(path))
		log.Printf("✓ %s -> %s", filepath.Base(path), branch)
	}

	for _, b := range r.config.Branches {
		if err := r.writeSiteConfig(baseDir, b); err != nil {
			return nil, err
		}
	}
	return distribution, nil
}

func (r *Router) createBranchTrees(baseDir string) error {
	for _, b := range r.config.Branches {
		for _, dir := range branchSkeleton {
			if err := os.MkdirAll(filepath.Join(baseDir, b.Key, dir), 0755); err != nil {
				return fmt.Errorf("creating branch tree for %s: %w", b.Key, err)
			}
		}
	}
	return nil
}

var siteConfigTemplate = template.Must(template.New("site-config").Parse(`# {{.Name}} 配置文件
# {{.Description}}

# Site
title: {{.Name}}
subtitle: {{.Description}}
description: 个人博客 - {{.Name}}
author: Ante Liu
language: zh-CN
timezone: Asia/Shanghai

# URL
url: https://your-site-url.com
root: /
permalink: :year/:month/:day/:title/

# Directory
source_dir: source
public_dir: public
tag_dir: tags
archive_dir: archives
category_dir: categories

# Writing
new_post_name: :title.md
default_layout: post
highlight:
  enable: true
  line_number: true

# Category & Tag
default_category: uncategorized

# Date / Time format
date_format: YYYY-MM-DD
time_format: HH:mm:ss

# Pagination
per_page: 10
pagination_dir: page

# Extensions
theme: {{.Theme}}

# Deployment
deploy:
  type: git
  repo: <repository url>
  branch: {{.Branch}}
`))

var packageManifestTemplate = template.Must(template.New("package-manifest").Parse(`{
  "name": "{{.Branch}}-blog",
  "version": "1.0.0",
  "private": true,
  "hexo": {
    "version": "3.8.0"
  },
  "dependencies": {
    "hexo": "^3.8.0",
    "hexo-generator-archive": "^0.1.5",
    "hexo-generator-category": "^0.1.3",
    "hexo-generator-index": "^0.2.1",
    "hexo-generator-tag": "^0.2.0",
    "hexo-renderer-ejs": "^0.3.1",
    "hexo-renderer-marked": "^0.3.2",
    "hexo-renderer-stylus": "^0.3.3",
    "hexo-server": "^0.3.3"
  }
}
`))

// writeSiteConfig renders the branch's _config.yml and package.json stubs.
func (r *Router) writeSiteConfig(baseDir string, b Branch) error {
	params := struct {
		Name        string
		Description string
		Theme       string
		Branch      string
	}{
		Name:        b.Name,
		Description: b.Description,
		Theme:       r.config.ThemeFor(b.Key),
		Branch:      b.Key,
	}

	var buf bytes.Buffer
	if err := siteConfigTemplate.Execute(&buf, params); err != nil {
		return fmt.Errorf("rendering site config for %s: %w", b.Key, err)
	}
	configPath := filepath.Join(baseDir, b.Key, "_config.yml")
	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	buf.Reset()
	if err := packageManifestTemplate.Execute(&buf, params); err != nil {
		return fmt.Errorf("rendering package manifest for %s: %w", b.Key, err)
	}
	manifestPath := filepath.Join(baseDir, b.Key, "package.json")
	if err := os.WriteFile(manifestPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", manifestPath, err)
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
