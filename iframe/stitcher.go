// Package iframe merges the content of embedded frames into a content tree.
// Same-origin frames are read straight from the snapshot; cross-origin
// frames are asked for their content over a correlated request/response
// protocol with a per-frame timeout.
package iframe

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/llmfeeder"
	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/sync/errgroup"
)

var _ llmfeeder.Stitcher = (*Stitcher)(nil)

// Stitcher implements llmfeeder.Stitcher.
type Stitcher struct {
	// Timeout bounds the wait for each cross-origin frame.
	Timeout time.Duration

	// BatchSize is the number of cross-origin frames queried in parallel.
	BatchSize int

	// Debug receives extraction events. Optional.
	Debug llmfeeder.DebugLog

	// NewID returns a correlation id. Defaults to "llmfeeder-" plus a UUID.
	NewID func() string
}

// NewStitcher creates a Stitcher with the default timeout and batch size.
func NewStitcher() *Stitcher {
	return &Stitcher{
		Timeout:   llmfeeder.DefaultFrameTimeout,
		BatchSize: llmfeeder.DefaultFrameBatchSize,
	}
}

// frameResult is the outcome of querying one cross-origin frame.
type frameResult struct {
	resp    llmfeeder.FrameResponse
	reached bool
}

// Stitch augments content with the frames of snapshot.
func (s *Stitcher) Stitch(ctx context.Context, content *llmfeeder.Content, snapshot *llmfeeder.Snapshot, transport llmfeeder.FrameTransport, opts llmfeeder.StitchOptions) ([]llmfeeder.Warning, []llmfeeder.FrameRecord) {
	if content == nil || content.Root == nil || snapshot == nil {
		return nil, nil
	}
	debug := s.debug()
	debug.Log("Starting iframe extraction", "frames", len(snapshot.Frames))

	extracted := make(map[int]llmfeeder.FrameRecord)
	var records []llmfeeder.FrameRecord
	var pending []llmfeeder.Frame

	for _, f := range snapshot.Frames {
		if f.Hidden && f.Src == "" && f.Srcdoc == "" {
			continue
		}
		if f.SameOrigin {
			body, ok := cleanBody(f.Body, "script, style, noscript")
			if !ok {
				debug.Log("Iframe skipped (not enough content)", "src", truncate(f.Source(), 50))
				continue
			}
			rec := llmfeeder.FrameRecord{
				Index:  f.Index,
				Src:    f.Source(),
				Title:  f.Label(),
				Access: llmfeeder.FrameSameOrigin,
				HTML:   body,
			}
			extracted[f.Index] = rec
			records = append(records, rec)
			debug.Log("Extracted same-origin iframe", "src", truncate(rec.Src, 50), "contentLength", len(body))
			continue
		}
		if isCrossOriginCandidate(f.Src) {
			pending = append(pending, f)
		}
	}

	var samples []llmfeeder.FrameSample
	if len(pending) > 0 {
		debug.Log("Attempting cross-origin iframe extraction", "count", len(pending))
		results := s.queryFrames(ctx, transport, pending)
		for i, f := range pending {
			res := results[i]
			switch {
			case res.reached && res.resp.Content != nil && strings.TrimSpace(*res.resp.Content) != "":
				rec := llmfeeder.FrameRecord{
					Index:  f.Index,
					Src:    f.Src,
					Title:  f.Label(),
					Access: llmfeeder.FrameCrossOriginReachable,
					HTML:   *res.resp.Content,
				}
				extracted[f.Index] = rec
				records = append(records, rec)
				debug.Log("Extracted cross-origin iframe via messaging", "src", truncate(f.Src, 50))
			case res.reached:
				debug.Log("Cross-origin iframe has no usable content", "src", truncate(f.Src, 50))
			default:
				records = append(records, llmfeeder.FrameRecord{
					Index:  f.Index,
					Src:    f.Src,
					Title:  f.Label(),
					Access: llmfeeder.FrameCrossOriginUnreachable,
				})
				samples = append(samples, llmfeeder.FrameSample{Src: f.Src, Title: f.Label()})
			}
		}
	}

	if opts.Append {
		appendSections(content.Root, extracted)
	} else {
		replaceFrames(content.Root, extracted, opts.PreserveLinks)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Index < records[j].Index })
	debug.Log("Iframe extraction complete", "extracted", len(extracted), "crossOrigin", len(samples))

	if len(samples) == 0 {
		return nil, records
	}
	warning := llmfeeder.Warning{
		Type:  llmfeeder.WarningCrossOriginIframe,
		Count: len(samples),
	}
	if len(samples) > llmfeeder.MaxWarningSamples {
		samples = samples[:llmfeeder.MaxWarningSamples]
	}
	warning.Details = samples
	return []llmfeeder.Warning{warning}, records
}

// queryFrames asks every frame for its content, BatchSize at a time.
// Results are positional.
func (s *Stitcher) queryFrames(ctx context.Context, transport llmfeeder.FrameTransport, frames []llmfeeder.Frame) []frameResult {
	results := make([]frameResult, len(frames))
	if transport == nil {
		return results
	}

	broker := NewBroker()
	unsubscribe := transport.Subscribe(func(resp llmfeeder.FrameResponse) {
		broker.Resolve(resp)
	})
	defer unsubscribe()

	size := s.BatchSize
	if size <= 0 {
		size = llmfeeder.DefaultFrameBatchSize
	}
	for start := 0; start < len(frames); start += size {
		end := min(start+size, len(frames))

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = s.queryFrame(ctx, transport, broker, frames[i])
				return nil
			})
		}
		_ = g.Wait()
	}
	return results
}

// queryFrame posts one request and waits for its correlated response, the
// timeout or cancellation, whichever comes first.
func (s *Stitcher) queryFrame(ctx context.Context, transport llmfeeder.FrameTransport, broker *Broker, frame llmfeeder.Frame) frameResult {
	id := s.newID()
	ch := broker.Register(id)
	defer broker.Cancel(id)

	req := llmfeeder.FrameRequest{Action: llmfeeder.ActionExtractContent, MessageID: id}
	if err := transport.Post(ctx, frame, req); err != nil {
		s.debug().Log("Posting to iframe failed", "src", truncate(frame.Src, 50), "error", err.Error())
		return frameResult{}
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = llmfeeder.DefaultFrameTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case resp := <-ch:
		return frameResult{resp: resp, reached: true}
	case <-timer.C:
		return frameResult{}
	case <-ctx.Done():
		return frameResult{}
	}
}

func (s *Stitcher) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return "llmfeeder-" + uuid.NewString()
}

func (s *Stitcher) debug() llmfeeder.DebugLog {
	if s.Debug == nil {
		return llmfeeder.NopDebugLog{}
	}
	return s.Debug
}

// isCrossOriginCandidate reports whether a frame with src is worth asking
// for its content.
func isCrossOriginCandidate(src string) bool {
	return src != "" && src != "about:blank" && src != "javascript:void(0)"
}

// replaceFrames replaces the i-th iframe of root with the content extracted
// from the frame at index i, a link to its source, or nothing.
func replaceFrames(root *html.Node, extracted map[int]llmfeeder.FrameRecord, preserveLinks bool) {
	goquery.NewDocumentFromNode(root).Find("iframe").Each(func(i int, sel *goquery.Selection) {
		n := sel.Nodes[0]
		if rec, ok := extracted[i]; ok {
			div := newElement(atom.Div, "llmfeeder-iframe-replacement")
			appendFragment(div, rec.HTML)
			replaceNode(n, div)
			return
		}

		src := sel.AttrOr("src", "")
		if preserveLinks && src != "" && src != "about:blank" {
			replaceNode(n, frameLink(src, frameTitle(sel)))
			return
		}
		n.Parent.RemoveChild(n)
	})
}

// appendSections appends extracted frame content to root as numbered
// sections ordered by frame index.
func appendSections(root *html.Node, extracted map[int]llmfeeder.FrameRecord) {
	if len(extracted) == 0 {
		return
	}
	indexes := make([]int, 0, len(extracted))
	for idx := range extracted {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	container := newElement(atom.Div, "llmfeeder-iframes")
	for n, idx := range indexes {
		section := newElement(atom.Div, "llmfeeder-iframe-section")
		section.AppendChild(newElement(atom.Hr, ""))
		h3 := newElement(atom.H3, "")
		h3.AppendChild(&html.Node{Type: html.TextNode, Data: "Embedded Content " + strconv.Itoa(n+1)})
		section.AppendChild(h3)
		appendFragment(section, extracted[idx].HTML)
		container.AppendChild(section)
	}
	root.AppendChild(container)
}

// frameLink builds "<p>[Embedded content: <a href=src>title</a>]</p>".
func frameLink(src, title string) *html.Node {
	div := newElement(atom.Div, "llmfeeder-iframe-link")
	p := newElement(atom.P, "")
	a := newElement(atom.A, "")
	a.Attr = append(a.Attr, html.Attribute{Key: "href", Val: src})
	a.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	p.AppendChild(&html.Node{Type: html.TextNode, Data: "[Embedded content: "})
	p.AppendChild(a)
	p.AppendChild(&html.Node{Type: html.TextNode, Data: "]"})
	div.AppendChild(p)
	return div
}

func frameTitle(sel *goquery.Selection) string {
	if title := sel.AttrOr("title", ""); title != "" {
		return title
	}
	if label := sel.AttrOr("aria-label", ""); label != "" {
		return label
	}
	return "Embedded content"
}

func newElement(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

func appendFragment(parent *html.Node, fragment string) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
}

func replaceNode(old, replacement *html.Node) {
	old.Parent.InsertBefore(replacement, old)
	old.Parent.RemoveChild(old)
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}
