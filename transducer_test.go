package main

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func transduce(t *testing.T, body string) string {
	t.Helper()
	doc := parseHTML(t, `<html><body><div class="article-entry">`+body+`</div></body></html>`)
	return Transduce(doc, DefaultConverterOptions())
}

func TestTransduce(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "heading and paragraph",
			body: `<h2>Title</h2><p>Body text here</p>`,
			want: "## Title\n\nBody text here",
		},
		{
			name: "suppressed heading",
			body: `<h1>Ante Liu</h1><h2>Real Heading</h2><p>Body text here</p>`,
			want: "## Real Heading\n\nBody text here",
		},
		{
			name: "short paragraph dropped",
			body: `<p>ok</p><p>Body text here</p>`,
			want: "Body text here",
		},
		{
			name: "unordered list",
			body: `<ul><li>First item</li><li>Second item</li></ul>`,
			want: "- First item\n- Second item",
		},
		{
			name: "ordered list",
			body: `<ol><li>First item</li><li>Second item</li></ol>`,
			want: "1. First item\n2. Second item",
		},
		{
			name: "blockquote",
			body: `<blockquote>Quoted line here</blockquote>`,
			want: "> Quoted line here",
		},
		{
			name: "link",
			body: `<a href="https://example.com">Example site</a>`,
			want: "[Example site](https://example.com)",
		},
		{
			name: "javascript link dropped",
			body: `<a href="javascript:void(0)">Menu</a><p>Body text here</p>`,
			want: "Body text here",
		},
		{
			name: "image",
			body: `<img src="/images/pic.png" alt="A picture">`,
			want: "![A picture](/images/pic.png)",
		},
		{
			name: "script dropped",
			body: `<script>var x = 1;</script><p>Body text here</p>`,
			want: "Body text here",
		},
		{
			name: "emphasis",
			body: `<strong>Bold text</strong>`,
			want: "**Bold text**",
		},
		{
			name: "empty root",
			body: ``,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transduce(t, tt.body); got != tt.want {
				t.Errorf("Transduce() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransduceBodyFallbackStripsChrome(t *testing.T) {
	doc := parseHTML(t, `<html><body>
		<nav>site menu</nav>
		<div class="left-col">sidebar text</div>
		<p>Real paragraph content</p>
	</body></html>`)

	got := Transduce(doc, DefaultConverterOptions())
	if got != "Real paragraph content" {
		t.Errorf("Transduce() = %q, want %q", got, "Real paragraph content")
	}
}

func firstNode(t *testing.T, src, selector string) *html.Node {
	t.Helper()
	sel := parseHTML(t, src).Find(selector).First()
	if sel.Length() == 0 {
		t.Fatalf("selector %q matched nothing", selector)
	}
	return sel.Nodes[0]
}

func TestExtractCodeBlockTable(t *testing.T) {
	src := `<figure class="highlight python"><table><tr>` +
		`<td class="gutter"><pre><span class="line">1</span><span class="line">2</span></pre></td>` +
		`<td class="code"><pre><span class="line">def add(a, b):</span>` +
		`<span class="line">    return a + <span class="keyword">b</span></span></pre></td>` +
		`</tr></table></figure>`

	got := ExtractCodeBlock(firstNode(t, src, "figure"))
	want := "def add(a, b):\nreturn a + b"
	if got != want {
		t.Errorf("ExtractCodeBlock() = %q, want %q", got, want)
	}
}

func TestExtractCodeBlockPreFallback(t *testing.T) {
	got := ExtractCodeBlock(firstNode(t, `<pre>x = 10<br>y = 20</pre>`, "pre"))
	want := "x = 10\ny = 20"
	if got != want {
		t.Errorf("ExtractCodeBlock() = %q, want %q", got, want)
	}
}

func TestTransduceFencesHighlightedFigure(t *testing.T) {
	body := `<figure class="highlight"><table><tr>` +
		`<td class="code"><pre><span class="line">def add(a, b):</span>` +
		`<span class="line">    return a + b</span></pre></td>` +
		`</tr></table></figure>`

	got := transduce(t, body)
	want := "```\ndef add(a, b):\nreturn a + b\n```"
	if got != want {
		t.Errorf("Transduce() = %q, want %q", got, want)
	}
}

func TestTransduceDropsNoiseFences(t *testing.T) {
	if got := transduce(t, `<pre>x=1</pre>`); got != "" {
		t.Errorf("Transduce() = %q, want empty", got)
	}
}

func TestMineDescription(t *testing.T) {
	tests := []struct {
		name string
		desc string
		path string
		want string
	}{
		{
			name: "empty",
			desc: "",
			path: "code/digest.html",
			want: "",
		},
		{
			name: "problem headings",
			desc: "1. Two Sum Given an array of integers",
			path: "code/leetcode/digest.html",
			want: "\n\n## 1. Two Sum Given an array of integers\n",
		},
		{
			name: "diary date headings",
			desc: "2019.01.02 天气很好",
			path: "chocolate/2019y.html",
			want: "\n\n### 2019.01.02\n 天气很好",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mineDescription(tt.desc, tt.path); got != tt.want {
				t.Errorf("mineDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeMarkdown(t *testing.T) {
	got := normalizeMarkdown("\n\n\n## Title\n\n\n\nBody   text\t here\n\n")
	want := "## Title\n\nBody text here"
	if got != want {
		t.Errorf("normalizeMarkdown() = %q, want %q", got, want)
	}
}

func TestFencedCode(t *testing.T) {
	if got := fencedCode("x+1"); got != "" {
		t.Errorf("fencedCode(short) = %q, want empty", got)
	}
	long := "def add(a, b):\n    return a + b"
	if got := fencedCode(long); !strings.HasPrefix(strings.TrimSpace(got), "```") {
		t.Errorf("fencedCode(long) = %q, want fenced", got)
	}
}
