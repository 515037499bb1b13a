package llmfeeder

import (
	"net/url"
	"regexp"
	"strings"
)

// PageInfo carries page-level fallbacks for post-processing.
type PageInfo struct {
	Title string
	URL   string
}

var (
	blankRunRe = regexp.MustCompile(`\n{3,}`)
	headingRe  = regexp.MustCompile(`^#{1,6} `)
	bulletRe   = regexp.MustCompile(`^[*+-] `)
)

// PostProcess normalizes converted Markdown and decorates it with the
// optional title heading and metadata block.
func PostProcess(markdown string, settings Settings, meta *ArticleMetadata, page PageInfo) string {
	markdown = CollapseBlankLines(markdown)
	markdown = spaceHeadings(markdown)
	markdown = joinBullets(markdown)

	if settings.IncludeTitle {
		if title := strings.TrimSpace(page.Title); title != "" {
			markdown = "# " + title + "\n\n" + markdown
		}
	}

	if settings.IncludeMetadata && settings.MetadataFormat != "" {
		if block := FormatMetadata(settings.MetadataFormat, meta, page); block != "" {
			markdown = markdown + "\n\n" + block
		}
	}

	return markdown
}

// CollapseBlankLines reduces every run of two or more blank lines to a
// single blank line.
func CollapseBlankLines(markdown string) string {
	return blankRunRe.ReplaceAllString(markdown, "\n\n")
}

// spaceHeadings inserts a blank line before any heading that directly
// follows non-blank text. Fenced code is left untouched.
func spaceHeadings(markdown string) string {
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))
	inFence := false
	for i, line := range lines {
		if isFence(line) {
			inFence = !inFence
		}
		if !inFence && i > 0 && headingRe.MatchString(line) && strings.TrimSpace(lines[i-1]) != "" {
			out = append(out, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// joinBullets drops blank lines that separate consecutive bullet items.
// Fenced code is left untouched.
func joinBullets(markdown string) string {
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))
	inFence := false
	for i, line := range lines {
		if isFence(line) {
			inFence = !inFence
		}
		if !inFence && strings.TrimSpace(line) == "" && betweenBullets(lines, i) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// betweenBullets reports whether the blank line at i sits between two
// top-level bullet items.
func betweenBullets(lines []string, i int) bool {
	prev := i - 1
	for prev >= 0 && strings.TrimSpace(lines[prev]) == "" {
		prev--
	}
	next := i + 1
	for next < len(lines) && strings.TrimSpace(lines[next]) == "" {
		next++
	}
	if prev < 0 || next >= len(lines) {
		return false
	}
	return bulletRe.MatchString(lines[prev]) && bulletRe.MatchString(lines[next])
}

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}

// FormatMetadata renders a metadata template. The placeholders {title},
// {url}, {date}, {author}, {siteName} and {excerpt} are replaced with
// article metadata or page fallbacks; any other text, including unknown
// placeholders, is kept verbatim. When the values cannot be derived the
// block falls back to a minimal source line.
func FormatMetadata(template string, meta *ArticleMetadata, page PageInfo) string {
	values, err := metadataValues(meta, page)
	if err != nil {
		title := page.Title
		if title == "" {
			title = "Untitled"
		}
		return "---\nSource: [" + title + "](" + page.URL + ")"
	}

	r := strings.NewReplacer(
		"{title}", values.Title,
		"{url}", page.URL,
		"{date}", values.PublishedTime,
		"{author}", values.Author,
		"{siteName}", values.SiteName,
		"{excerpt}", values.Excerpt,
	)
	return r.Replace(template)
}

func metadataValues(meta *ArticleMetadata, page PageInfo) (ArticleMetadata, error) {
	var v ArticleMetadata
	if meta != nil {
		v = *meta
	}
	if v.Title == "" {
		v.Title = page.Title
	}
	if v.Title == "" {
		v.Title = "Untitled"
	}
	if v.SiteName == "" {
		u, err := url.Parse(page.URL)
		if err != nil {
			return ArticleMetadata{}, err
		}
		v.SiteName = u.Hostname()
	}
	return v, nil
}
