// Package goquery extracts and sanitizes page content with goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/llmfeeder"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ llmfeeder.Extractor = (*Extractor)(nil)

// fallbackSelectors are tried in order when the article parse yields nothing.
var fallbackSelectors = []string{"main", "article", ".content", "#content", "body"}

// Extractor produces the working content tree of a snapshot using goquery.
// Each call parses the snapshot afresh, so the live document is never
// touched.
type Extractor struct {
	// Parser finds the main article. When nil, main-content extraction goes
	// straight to the selector fallback.
	Parser llmfeeder.ArticleParser
}

// NewExtractor creates a new Extractor backed by parser.
func NewExtractor(parser llmfeeder.ArticleParser) *Extractor {
	return &Extractor{Parser: parser}
}

// Extract returns the content for scope.
func (e *Extractor) Extract(snapshot *llmfeeder.Snapshot, scope llmfeeder.ContentScope) (*llmfeeder.Content, *llmfeeder.ArticleMetadata, error) {
	if snapshot == nil {
		return nil, nil, llmfeeder.Errorf(llmfeeder.ENOCONTENT, "no document")
	}

	switch scope {
	case llmfeeder.ScopeFullPage:
		root, err := e.fullPage(snapshot)
		if err != nil {
			return nil, nil, err
		}
		return newContent(root, snapshot, scope), nil, nil
	case llmfeeder.ScopeSelection:
		root, err := selection(snapshot)
		if err != nil {
			return nil, nil, err
		}
		return newContent(root, snapshot, scope), nil, nil
	default:
		return e.mainContent(snapshot)
	}
}

func (e *Extractor) fullPage(snapshot *llmfeeder.Snapshot) (*html.Node, error) {
	doc, err := parseDocument(snapshot.HTML)
	if err != nil {
		return nil, err
	}
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil, llmfeeder.Errorf(llmfeeder.ENOCONTENT, "document has no body")
	}

	root := newContainer()
	moveChildren(root, body.Nodes[0])
	goquery.NewDocumentFromNode(root).Find("script, style").Remove()
	return root, nil
}

func selection(snapshot *llmfeeder.Snapshot) (*html.Node, error) {
	if strings.TrimSpace(snapshot.Selection) == "" {
		return nil, llmfeeder.Errorf(llmfeeder.ENOSELECTION, "no text is selected")
	}

	root, err := parseFragment(snapshot.Selection)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(goquery.NewDocumentFromNode(root).Text()) == "" {
		return nil, llmfeeder.Errorf(llmfeeder.ENOSELECTION, "no text is selected")
	}
	return root, nil
}

func (e *Extractor) mainContent(snapshot *llmfeeder.Snapshot) (*llmfeeder.Content, *llmfeeder.ArticleMetadata, error) {
	doc, err := parseDocument(snapshot.HTML)
	if err != nil {
		return nil, nil, err
	}

	if e.Parser != nil {
		article, err := e.Parser.Parse(snapshot.HTML, snapshot.URL)
		if err == nil && article != nil && strings.TrimSpace(article.ContentHTML) != "" {
			root, err := parseFragment(article.ContentHTML)
			if err == nil {
				meta := completeMetadata(article, doc, snapshot)
				return newContent(root, snapshot, llmfeeder.ScopeMainContent), meta, nil
			}
		}
	}

	for _, selector := range fallbackSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		node := sel.Nodes[0]
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
		root := newContainer()
		root.AppendChild(node)
		return newContent(root, snapshot, llmfeeder.ScopeMainContent), nil, nil
	}

	return nil, nil, llmfeeder.Errorf(llmfeeder.ENOCONTENT, "no content node found")
}

// SelectHTML returns the outer HTML of every element of rawHTML matching
// selector, concatenated in document order. It stands in for a live text
// selection when the document comes from a static fetch.
func SelectHTML(rawHTML, selector string) (string, error) {
	doc, err := parseDocument(rawHTML)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var renderErr error
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if renderErr != nil {
			return
		}
		s, err := goquery.OuterHtml(sel)
		if err != nil {
			renderErr = err
			return
		}
		sb.WriteString(s)
	})
	if renderErr != nil {
		return "", renderErr
	}
	return sb.String(), nil
}

func newContent(root *html.Node, snapshot *llmfeeder.Snapshot, scope llmfeeder.ContentScope) *llmfeeder.Content {
	return &llmfeeder.Content{Root: root, BaseURL: snapshot.Base(), Scope: scope}
}

func parseDocument(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, llmfeeder.Errorf(llmfeeder.ENOCONTENT, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// parseFragment parses an HTML fragment into a new detached container.
func parseFragment(fragment string) (*html.Node, error) {
	content, err := llmfeeder.NewContent(fragment, "", "")
	if err != nil {
		return nil, llmfeeder.Errorf(llmfeeder.ENOCONTENT, "failed to parse HTML fragment: %v", err)
	}
	return content.Root, nil
}

func newContainer() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}

func moveChildren(dst, src *html.Node) {
	for c := src.FirstChild; c != nil; {
		next := c.NextSibling
		src.RemoveChild(c)
		dst.AppendChild(c)
		c = next
	}
}
