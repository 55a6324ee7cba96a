// transducer.go
package main

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	blankRunsRe  = regexp.MustCompile(`\n{3,}`)
	hspaceRunsRe = regexp.MustCompile(`[ \t]+`)
)

// Transduce converts the document body into normalized Markdown. The
// content root is the first match from opts.ContentSelectors; without one
// the full body is used with chrome regions removed. Returns "" when no
// body subtree is available.
func Transduce(doc *goquery.Document, opts ConverterOptions) string {
	root := selectContentRoot(doc, opts)
	if root == nil {
		return ""
	}
	fragments := renderChildren(root, opts)
	return normalizeMarkdown(strings.Join(fragments, "\n"))
}

// normalizeMarkdown collapses runs of blank lines to one, runs of
// horizontal whitespace to a single space, and trims the ends.
func normalizeMarkdown(s string) string {
	s = blankRunsRe.ReplaceAllString(s, "\n\n")
	s = hspaceRunsRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func selectContentRoot(doc *goquery.Document, opts ConverterOptions) *html.Node {
	for _, selector := range opts.ContentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel.Nodes[0]
		}
	}
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}
	body.Find(strings.Join(opts.ChromeSelectors, ", ")).Remove()
	return body.Nodes[0]
}

func renderChildren(n *html.Node, opts ConverterOptions) []string {
	var fragments []string
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if fragment := renderNode(child, opts); fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	return fragments
}

// renderNode dispatches on the node kind and returns the Markdown fragment
// for that subtree. Unknown element kinds are treated as transparent
// containers.
func renderNode(n *html.Node, opts ConverterOptions) string {
	switch n.Type {
	case html.TextNode:
		return strings.TrimSpace(n.Data)
	case html.ElementNode:
	default:
		return ""
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := flattenText(n)
		if text == "" || isSuppressedHeading(text, opts) {
			return ""
		}
		level := int(n.Data[1] - '0')
		return "\n" + strings.Repeat("#", level) + " " + text + "\n"
	case "p":
		text := flattenText(n)
		// Anything this short is decorative markup, not a paragraph.
		if utf8.RuneCountInString(text) <= 5 {
			return ""
		}
		return "\n" + text + "\n"
	case "strong", "b":
		if text := flattenText(n); text != "" {
			return "**" + text + "**"
		}
		return ""
	case "em", "i":
		if text := flattenText(n); text != "" {
			return "*" + text + "*"
		}
		return ""
	case "code":
		return "`" + rawText(n) + "`"
	case "pre":
		return fencedCode(ExtractCodeBlock(n))
	case "figure":
		if hasClass(n, "highlight") {
			return fencedCode(ExtractCodeBlock(n))
		}
		return ""
	case "ul":
		var lines []string
		for li := n.FirstChild; li != nil; li = li.NextSibling {
			if li.Type != html.ElementNode || li.Data != "li" {
				continue
			}
			if text := flattenText(li); text != "" {
				lines = append(lines, "- "+text)
			}
		}
		return strings.Join(lines, "\n")
	case "ol":
		var lines []string
		i := 0
		for li := n.FirstChild; li != nil; li = li.NextSibling {
			if li.Type != html.ElementNode || li.Data != "li" {
				continue
			}
			i++
			if text := flattenText(li); text != "" {
				lines = append(lines, fmt.Sprintf("%d. %s", i, text))
			}
		}
		return strings.Join(lines, "\n")
	case "blockquote":
		if text := flattenText(n); text != "" {
			return "\n> " + text + "\n"
		}
		return ""
	case "br":
		return "\n"
	case "a":
		text := flattenText(n)
		href := attrValue(n, "href")
		if text == "" || strings.Contains(href, "javascript:") || strings.Contains(href, "onenote:") {
			return ""
		}
		return "[" + text + "](" + href + ")"
	case "img":
		src := attrValue(n, "src")
		if src == "" || strings.Contains(src, "javascript") {
			return ""
		}
		return "![" + attrValue(n, "alt") + "](" + src + ")"
	case "script", "style", "noscript", "iframe", "figcaption":
		return ""
	default:
		return strings.Join(renderChildren(n, opts), "\n")
	}
}

func isSuppressedHeading(text string, opts ConverterOptions) bool {
	for _, heading := range opts.SuppressedHeadings {
		if text == heading {
			return true
		}
	}
	return false
}

// ExtractCodeBlock reconstructs a source listing from syntax-highlighter
// markup. Hexo renders code as a two-column table with one span.line per
// source row; a plain pre with br markers and nested spans is the fallback.
func ExtractCodeBlock(n *html.Node) string {
	if table := findElement(n, "table"); table != nil {
		if pre := findCodeCellPre(table); pre != nil {
			var lines []string
			walkElements(pre, func(el *html.Node) {
				if el.Data == "span" && hasClass(el, "line") {
					if text := flattenText(el); text != "" {
						lines = append(lines, text)
					}
				}
			})
			return strings.Join(lines, "\n")
		}
	}

	pre := n
	if n.Data != "pre" {
		pre = findElement(n, "pre")
	}
	if pre == nil {
		return ""
	}
	return strings.TrimSpace(textWithBreaks(pre))
}

// fencedCode wraps a listing in a fence. Listings of five characters or
// fewer are highlighter noise and are dropped.
func fencedCode(code string) string {
	if utf8.RuneCountInString(strings.TrimSpace(code)) <= 5 {
		return ""
	}
	return "\n```\n" + code + "\n```\n"
}

func findCodeCellPre(table *html.Node) *html.Node {
	var pre *html.Node
	walkElements(table, func(el *html.Node) {
		if pre == nil && el.Data == "td" && hasClass(el, "code") {
			pre = findElement(el, "pre")
		}
	})
	return pre
}

// mineDescription shapes the head description into usable body text when
// the document itself yields nothing. LeetCode digests get per-problem
// headings; diary digests get per-date headings and sentence breaks.
func mineDescription(desc, path string) string {
	desc = strings.Join(strings.Fields(desc), " ")
	if desc == "" {
		return ""
	}

	p := strings.ToLower(filepath.ToSlash(path))
	if strings.Contains(p, "code") || strings.Contains(p, "leetcode") {
		return leetcodeTitleRe.ReplaceAllString(desc, "\n\n## $1\n")
	}
	if strings.Contains(p, "chocolate") {
		desc = diaryDateRe.ReplaceAllString(desc, "\n\n### $1\n")
		if len(sentenceSepRe.FindAllStringIndex(desc, -1))+1 > 3 {
			return sentenceSepRe.ReplaceAllString(desc, "$1\n\n")
		}
	}
	return desc
}

var (
	leetcodeTitleRe = regexp.MustCompile(`(\d+\.\s*[A-Z][^.]+)`)
	diaryDateRe     = regexp.MustCompile(`(\d{4}\.\d{2}\.\d{2})`)
	sentenceSepRe   = regexp.MustCompile(`([。！？.!?])\s+`)
)

// flattenText concatenates every text descendant and trims the result.
func flattenText(n *html.Node) string {
	return strings.TrimSpace(rawText(n))
}

func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return b.String()
}

// textWithBreaks is rawText with br elements turned into newlines.
func textWithBreaks(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			b.WriteString("\n")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return b.String()
}

// findElement returns the first descendant element with the given name.
func findElement(n *html.Node, name string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == name {
			return c
		}
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

// walkElements visits every descendant element depth-first.
func walkElements(n *html.Node, visit func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			visit(c)
		}
		walkElements(c, visit)
	}
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attrValue(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}
