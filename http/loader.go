package http

import (
	"context"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/llmfeeder"
)

// Ensure TabLoader implements llmfeeder.TabLoader at compile time.
var _ llmfeeder.TabLoader = (*TabLoader)(nil)

// TabLoader opens documents over HTTP. Without a script runtime every
// frame served from the page's own origin, and every srcdoc frame, is
// fetched up front and treated as same-origin; other frames have no
// transport and end up unreachable.
type TabLoader struct {
	fetcher *Fetcher
	nextID  atomic.Int64
}

// NewTabLoader creates a TabLoader using fetcher.
func NewTabLoader(fetcher *Fetcher) *TabLoader {
	return &TabLoader{fetcher: fetcher}
}

// Load fetches rawURL and its same-origin frames.
func (l *TabLoader) Load(ctx context.Context, rawURL string) (*llmfeeder.Tab, error) {
	resp, err := l.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	snap, err := l.snapshot(ctx, resp)
	if err != nil {
		return nil, err
	}
	return llmfeeder.NewTab(int(l.nextID.Add(1)), snap, nil, nil), nil
}

func (l *TabLoader) snapshot(ctx context.Context, resp *Response) (*llmfeeder.Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.HTML))
	if err != nil {
		return nil, llmfeeder.Errorf(llmfeeder.ENOCONTENT, "parse %s: %v", resp.URL, err)
	}

	pageURL, err := url.Parse(resp.URL)
	if err != nil {
		return nil, llmfeeder.Errorf(llmfeeder.EINVALID, "invalid URL %q: %v", resp.URL, err)
	}
	base := pageURL
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if u, err := pageURL.Parse(strings.TrimSpace(href)); err == nil {
			base = u
		}
	}

	snap := &llmfeeder.Snapshot{
		URL:   resp.URL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		HTML:  resp.HTML,
	}
	if base != pageURL {
		snap.BaseURL = base.String()
	}

	doc.Find("iframe").Each(func(i int, s *goquery.Selection) {
		snap.Frames = append(snap.Frames, l.frame(ctx, i, s, pageURL, base))
	})
	return snap, nil
}

func (l *TabLoader) frame(ctx context.Context, index int, s *goquery.Selection, pageURL, base *url.URL) llmfeeder.Frame {
	f := llmfeeder.Frame{
		Index:     index,
		Srcdoc:    s.AttrOr("srcdoc", ""),
		Title:     s.AttrOr("title", ""),
		AriaLabel: s.AttrOr("aria-label", ""),
		Hidden:    isHidden(s),
	}
	if src := strings.TrimSpace(s.AttrOr("src", "")); src != "" {
		if u, err := base.Parse(src); err == nil {
			f.Src = u.String()
		} else {
			f.Src = src
		}
	}

	switch {
	case f.Srcdoc != "":
		f.SameOrigin = true
		f.Body = bodyHTML(f.Srcdoc)
	case f.Src != "" && sameOrigin(pageURL, f.Src):
		resp, err := l.fetcher.Fetch(ctx, f.Src)
		if err != nil {
			return f
		}
		f.SameOrigin = true
		f.Body = bodyHTML(resp.HTML)
	}
	return f
}

// isHidden approximates "not rendered" from markup alone.
func isHidden(s *goquery.Selection) bool {
	if _, ok := s.Attr("hidden"); ok {
		return true
	}
	style := strings.ReplaceAll(strings.ToLower(s.AttrOr("style", "")), " ", "")
	return strings.Contains(style, "display:none")
}

func sameOrigin(page *url.URL, rawSrc string) bool {
	u, err := url.Parse(rawSrc)
	if err != nil {
		return false
	}
	return u.Scheme == page.Scheme && u.Host == page.Host
}

func bodyHTML(document string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return ""
	}
	html, err := doc.Find("body").First().Html()
	if err != nil {
		return ""
	}
	return html
}
