package iframe

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/llmfeeder"
)

// Respond answers an extraction request on behalf of a frame whose body
// HTML is bodyHTML. It reports false when req is not an extraction request.
// The response carries nil content when the frame has too little text.
func Respond(req llmfeeder.FrameRequest, bodyHTML string) (llmfeeder.FrameResponse, bool) {
	if req.Action != llmfeeder.ActionExtractContent {
		return llmfeeder.FrameResponse{}, false
	}
	resp := llmfeeder.FrameResponse{
		Action:    llmfeeder.ActionExtractResponse,
		MessageID: req.MessageID,
	}
	if content, ok := cleanBody(bodyHTML, "script, style, noscript, iframe"); ok {
		resp.Content = &content
	}
	return resp, true
}

// cleanBody strips the elements matching remove from bodyHTML and returns
// the remaining HTML when its trimmed text exceeds the frame threshold.
func cleanBody(bodyHTML, remove string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + bodyHTML + "</body>"))
	if err != nil {
		return "", false
	}
	body := doc.Find("body").First()
	body.Find(remove).Remove()

	if utf8.RuneCountInString(strings.TrimSpace(body.Text())) <= llmfeeder.MinFrameContentLength {
		return "", false
	}
	content, err := body.Html()
	if err != nil {
		return "", false
	}
	return content, true
}
