package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/llmfeeder/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishedDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "article published time",
			html: `<meta property="article:published_time" content="2023-11-02T23:30:00Z">`,
			want: "2023-11-02",
		},
		{
			name: "time element datetime",
			html: `<time datetime="2022-06-15">June 15</time>`,
			want: "2022-06-15",
		},
		{
			name: "skips unparseable values",
			html: `<meta name="date" content="sometime soon"><time datetime="2021-01-09T08:00:00Z">x</time>`,
			want: "2021-01-09",
		},
		{
			name: "pubdate text",
			html: `<time pubdate>2020-02-29</time>`,
			want: "2020-02-29",
		},
		{
			name: "none found",
			html: `<p>No dates</p>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := gq.NewDocumentFromReader(strings.NewReader("<html><head></head><body>" + tt.html + "</body></html>"))
			require.NoError(t, err)

			assert.Equal(t, tt.want, goquery.PublishedDate(doc))
		})
	}
}
