package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/fwojciec/llmfeeder"
)

var authorSelectors = []string{
	`meta[name="author"]`,
	`meta[property="article:author"]`,
	`meta[name="dcterms.creator"]`,
	`meta[name="DC.creator"]`,
	`meta[property="og:author"]`,
}

var siteNameSelectors = []string{
	`meta[property="og:site_name"]`,
	`meta[name="application-name"]`,
	`meta[name="apple-mobile-web-app-title"]`,
}

var dateSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[name="dcterms.created"]`,
	`meta[name="DC.date.created"]`,
	`meta[name="date"]`,
	`meta[property="og:published_time"]`,
	`time[datetime]`,
	`time[pubdate]`,
}

// completeMetadata fills the gaps of a parsed article from the document's
// meta tags and the snapshot itself.
func completeMetadata(article *llmfeeder.Article, doc *goquery.Document, snapshot *llmfeeder.Snapshot) *llmfeeder.ArticleMetadata {
	meta := &llmfeeder.ArticleMetadata{
		Title:         article.Title,
		Author:        article.Byline,
		SiteName:      article.SiteName,
		PublishedTime: article.PublishedTime,
		Excerpt:       article.Excerpt,
	}
	if meta.Title == "" {
		meta.Title = snapshot.Title
	}
	if meta.Author == "" {
		meta.Author = firstMetaContent(doc, authorSelectors)
	}
	if meta.SiteName == "" {
		meta.SiteName = firstMetaContent(doc, siteNameSelectors)
	}
	if meta.SiteName == "" {
		meta.SiteName = snapshot.Hostname()
	}
	if meta.PublishedTime == "" {
		meta.PublishedTime = PublishedDate(doc)
	}
	return meta
}

func firstMetaContent(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		content, _ := doc.Find(selector).First().Attr("content")
		if content = strings.TrimSpace(content); content != "" {
			return content
		}
	}
	return ""
}

// PublishedDate returns the first parseable publication date found in the
// document's meta tags or time elements, formatted as YYYY-MM-DD in UTC.
// Returns "" when none parses.
func PublishedDate(doc *goquery.Document) string {
	for _, selector := range dateSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		value := sel.AttrOr("content", "")
		if value == "" {
			value = sel.AttrOr("datetime", "")
		}
		if value == "" {
			value = sel.Text()
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		t, err := dateparse.ParseIn(value, time.UTC)
		if err != nil {
			continue
		}
		return t.UTC().Format("2006-01-02")
	}
	return ""
}
