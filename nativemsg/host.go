package nativemsg

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/llmfeeder"
)

// Host actions.
const (
	ActionConvert   = "convertToMarkdown"
	ActionDebugLogs = "getDebugLogs"
	ActionPing      = "ping"
)

// Request is an incoming message. Fields beyond Action depend on the action.
type Request struct {
	Action string `json:"action"`

	// ID is echoed in the response so callers can match replies to
	// concurrent requests.
	ID json.RawMessage `json:"id,omitempty"`

	// Settings for convertToMarkdown. Absent fields take their defaults;
	// an absent object uses the stored settings.
	Settings *llmfeeder.Settings `json:"settings,omitempty"`

	// Document is a snapshot captured by the extension. When absent the
	// host loads URL itself.
	Document *llmfeeder.Snapshot `json:"document,omitempty"`
	URL      string              `json:"url,omitempty"`

	// TabID names the browser tab the request comes from. Overlapping
	// conversions of one tab are rejected with EBUSY.
	TabID int `json:"tabId,omitempty"`

	// MessageID and Content carry frame extraction responses.
	MessageID string  `json:"messageId,omitempty"`
	Content   *string `json:"content,omitempty"`
}

// Response is an outgoing reply.
type Response struct {
	ID         json.RawMessage     `json:"id,omitempty"`
	Success    bool                `json:"success"`
	Markdown   string              `json:"markdown,omitempty"`
	Title      string              `json:"title,omitempty"`
	TokenCount int                 `json:"tokenCount,omitempty"`
	Warnings   []llmfeeder.Warning `json:"warnings,omitempty"`
	Logs       *string             `json:"logs,omitempty"`
	Code       string              `json:"code,omitempty"`
	Error      string              `json:"error,omitempty"`
	Details    string              `json:"details,omitempty"`
}

// Host answers extension requests read from one stream and written to
// another. Conversions run concurrently with reading, so frame responses
// that arrive while a conversion waits on them are routed to it.
type Host struct {
	Converter llmfeeder.DocumentConverter

	// Loader opens documents requested by URL. Optional.
	Loader llmfeeder.TabLoader

	// Settings supplies defaults when a request carries none. Optional.
	Settings llmfeeder.SettingsStore

	// Debug serves getDebugLogs. Optional.
	Debug llmfeeder.DebugLog

	Logger *slog.Logger

	mu     sync.Mutex
	w      io.Writer
	frames *frameTransport
	nextID atomic.Int64
	wg     sync.WaitGroup
}

// Serve reads requests from r until it ends or ctx is done, writing replies
// to w. It waits for in-flight conversions before returning.
func (h *Host) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	h.w = w
	h.frames = &frameTransport{host: h}
	defer h.wg.Wait()

	reqs := make(chan Request)
	errc := make(chan error, 1)
	go func() {
		for {
			var req Request
			if err := ReadMessage(r, &req); err != nil {
				errc <- err
				return
			}
			select {
			case reqs <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errc:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		case req := <-reqs:
			h.dispatch(ctx, req)
		}
	}
}

func (h *Host) dispatch(ctx context.Context, req Request) {
	switch req.Action {
	case ActionPing:
		h.reply(Response{ID: req.ID, Success: true})
	case ActionDebugLogs:
		logs := ""
		if h.Debug != nil {
			logs = h.Debug.Transcript()
		}
		h.reply(Response{ID: req.ID, Success: true, Logs: &logs})
	case ActionConvert:
		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			h.reply(h.convert(ctx, req))
		}()
	case llmfeeder.ActionExtractResponse:
		h.frames.Publish(llmfeeder.FrameResponse{
			Action:    req.Action,
			MessageID: req.MessageID,
			Content:   req.Content,
		})
	default:
		h.reply(failure(req.ID, llmfeeder.Errorf(llmfeeder.EINVALID, "unknown action %q", req.Action)))
	}
}

func (h *Host) convert(ctx context.Context, req Request) Response {
	settings, err := h.settings(ctx, req.Settings)
	if err != nil {
		return failure(req.ID, err)
	}

	var tab *llmfeeder.Tab
	switch {
	case req.Document != nil:
		tab = llmfeeder.NewTab(h.tabID(req), req.Document, h.frames, nil)
	case req.URL != "" && h.Loader != nil:
		tab, err = h.Loader.Load(ctx, req.URL)
		if err != nil {
			return failure(req.ID, err)
		}
		defer tab.Close()
		tab.ID = h.tabID(req)
	default:
		return failure(req.ID, llmfeeder.Errorf(llmfeeder.EINVALID, "request carries neither a document nor a loadable URL"))
	}

	result := h.Converter.Convert(ctx, tab, settings)
	if !result.Success {
		return Response{ID: req.ID, Code: result.Code, Error: result.Error, Details: result.Details}
	}
	return Response{
		ID:         req.ID,
		Success:    true,
		Markdown:   result.Markdown,
		Title:      result.Title,
		TokenCount: result.TokenCount,
		Warnings:   result.Warnings,
	}
}

// tabID returns the request's browser tab ID. Requests without one get a
// negative ID of their own, which never collides with a browser tab.
func (h *Host) tabID(req Request) int {
	if req.TabID > 0 {
		return req.TabID
	}
	return -int(h.nextID.Add(1))
}

func (h *Host) settings(ctx context.Context, s *llmfeeder.Settings) (llmfeeder.Settings, error) {
	if s != nil {
		return *s, nil
	}
	if h.Settings == nil {
		return llmfeeder.DefaultSettings(), nil
	}
	return h.Settings.LoadSettings(ctx)
}

// reply writes resp. Oversized replies are replaced by an error reply.
func (h *Host) reply(resp Response) {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := WriteMessage(h.w, resp)
	if llmfeeder.ErrorCode(err) == llmfeeder.EINVALID {
		err = WriteMessage(h.w, failure(resp.ID, llmfeeder.Errorf(llmfeeder.EINVALID, "response too large for native messaging")))
	}
	if err != nil && h.Logger != nil {
		h.Logger.Error("write reply", "err", err)
	}
}

func (h *Host) send(v any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return WriteMessage(h.w, v)
}

func failure(id json.RawMessage, err error) Response {
	code := llmfeeder.ErrorCode(err)
	return Response{
		ID:      id,
		Code:    code,
		Error:   llmfeeder.UserMessage(code),
		Details: err.Error(),
	}
}
