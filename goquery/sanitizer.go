package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/llmfeeder"
	"golang.org/x/net/html"
)

var _ llmfeeder.Sanitizer = (*Sanitizer)(nil)

// removeSelectors are dropped from every content tree.
var removeSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", ".comments", ".ads", ".sidebar",
}

var imageSelectors = []string{"img", "picture", "svg"}

// Sanitizer strips noise from a content tree and absolutizes its links.
type Sanitizer struct{}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Clean sanitizes content in place.
func (s *Sanitizer) Clean(content *llmfeeder.Content, opts llmfeeder.SanitizeOptions) {
	if content == nil || content.Root == nil {
		return
	}
	doc := goquery.NewDocumentFromNode(content.Root)

	selectors := append([]string(nil), removeSelectors...)
	if !opts.KeepIframes {
		selectors = append(selectors, "iframe")
	}
	if !opts.IncludeImages {
		selectors = append(selectors, imageSelectors...)
	}
	doc.Find(strings.Join(selectors, ", ")).Remove()

	doc.Find("p, div").Each(func(_ int, sel *goquery.Selection) {
		if isEmpty(sel.Nodes[0]) {
			sel.Remove()
		}
	})

	base, err := url.Parse(content.BaseURL)
	if err != nil {
		return
	}
	absolutize(doc, "a[href]", "href", base)
	absolutize(doc, "img[src]", "src", base)
}

// isEmpty reports whether n has no element children and only whitespace text.
func isEmpty(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			return false
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		}
	}
	return true
}

// absolutize rewrites attr of every element matching selector to an absolute
// URL. Values that cannot be resolved are left untouched.
func absolutize(doc *goquery.Document, selector, attr string, base *url.URL) {
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		value, _ := sel.Attr(attr)
		if resolved, ok := resolveURL(base, value); ok {
			sel.SetAttr(attr, resolved)
		}
	})
}

// resolveURL resolves href against base. It reports false when href
// cannot be parsed.
func resolveURL(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}
