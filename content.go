package llmfeeder

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Content is the extracted content tree of a conversion run. It is sanitized
// and augmented in place, then read by the Converter.
type Content struct {
	// Root is a detached container element holding the content.
	Root *html.Node

	// BaseURL resolves relative links inside the content.
	BaseURL string

	// Scope records which strategy produced the content.
	Scope ContentScope
}

// NewContent parses an HTML fragment into a Content rooted at a detached
// container element.
func NewContent(fragment, baseURL string, scope ContentScope) (*Content, error) {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), root)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &Content{Root: root, BaseURL: baseURL, Scope: scope}, nil
}

// HTML returns the serialized children of Root.
func (c *Content) HTML() string {
	if c == nil || c.Root == nil {
		return ""
	}
	var buf bytes.Buffer
	for n := c.Root.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&buf, n); err != nil {
			break
		}
	}
	return buf.String()
}

// Text returns the text content of Root.
func (c *Content) Text() string {
	if c == nil || c.Root == nil {
		return ""
	}
	var sb strings.Builder
	collectText(&sb, c.Root)
	return sb.String()
}

func collectText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
	}
}

// ArticleMetadata describes an article. All fields are optional.
type ArticleMetadata struct {
	Title         string `json:"title,omitempty"`
	Author        string `json:"author,omitempty"`
	SiteName      string `json:"siteName,omitempty"`
	PublishedTime string `json:"publishedTime,omitempty"`
	Excerpt       string `json:"excerpt,omitempty"`
}

// Article is the result of a readability-style parse.
type Article struct {
	Title         string
	Byline        string
	SiteName      string
	PublishedTime string
	Excerpt       string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// ArticleParser finds the primary article of a document by content density.
type ArticleParser interface {
	// Parse processes a full HTML document located at pageURL.
	Parse(rawHTML string, pageURL string) (*Article, error)
}

// Extractor produces the working content tree for a scope.
type Extractor interface {
	// Extract returns the content for scope. Metadata is nil unless the
	// main-content parse succeeded.
	// Returns ENOCONTENT if no node can be produced and ENOSELECTION if scope
	// is ScopeSelection and the selection is empty.
	Extract(snapshot *Snapshot, scope ContentScope) (*Content, *ArticleMetadata, error)
}

// SanitizeOptions configures Sanitizer.Clean.
type SanitizeOptions struct {
	IncludeImages bool

	// KeepIframes leaves iframe elements in place for a caller that handles
	// them afterwards.
	KeepIframes bool
}

// Sanitizer cleans a content tree in place. It never fails.
type Sanitizer interface {
	Clean(content *Content, opts SanitizeOptions)
}
