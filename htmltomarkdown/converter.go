package htmltomarkdown

import (
	"bytes"
	"regexp"
	"strings"
	"sync"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/llmfeeder"
	"golang.org/x/net/html"
)

// Ensure Converter implements llmfeeder.Converter at compile time.
var _ llmfeeder.Converter = (*Converter)(nil)

// rules selects the optional renderers of a converter.
type rules struct {
	tables bool
	images bool
}

// Converter wraps html-to-markdown to convert content trees to Markdown.
// One underlying converter is built per rule combination and reused.
type Converter struct {
	mu    sync.Mutex
	convs map[rules]*converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{convs: make(map[rules]*converter.Converter)}
}

// Convert transforms content into Markdown. Panics raised while rendering
// are returned as EINTERNAL errors.
func (c *Converter) Convert(content *llmfeeder.Content, settings llmfeeder.Settings) (md string, err error) {
	raw := content.HTML()
	if strings.TrimSpace(raw) == "" {
		return "", llmfeeder.Errorf(llmfeeder.ENOCONTENT, "empty HTML input")
	}

	defer func() {
		if r := recover(); r != nil {
			md = ""
			err = llmfeeder.Errorf(llmfeeder.EINTERNAL, "markdown conversion panicked: %v", r)
		}
	}()

	conv := c.converter(rules{tables: settings.PreserveTables, images: settings.IncludeImages})

	var opts []converter.ConvertOptionFunc
	if content.BaseURL != "" {
		opts = append(opts, converter.WithDomain(content.BaseURL))
	}
	return conv.ConvertString(raw, opts...)
}

func (c *Converter) converter(r rules) *converter.Converter {
	c.mu.Lock()
	defer c.mu.Unlock()
	if conv, ok := c.convs[r]; ok {
		return conv
	}
	conv := newConverter(r)
	c.convs[r] = conv
	return conv
}

func newConverter(r rules) *converter.Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				commonmark.WithHorizontalRule("---"),
				commonmark.WithBulletListMarker("-"),
				commonmark.WithCodeBlockFence("```"),
				commonmark.WithEmDelimiter("*"),
			),
		),
	)

	conv.Register.RendererFor("pre", converter.TagTypeBlock, renderFencedCode, converter.PriorityEarly)
	if r.tables {
		conv.Register.RendererFor("table", converter.TagTypeBlock, renderTable, converter.PriorityEarly)
	}
	if !r.images {
		conv.Register.RendererFor("img", converter.TagTypeInline, renderNothing, converter.PriorityEarly)
	}
	return conv
}

var languageRe = regexp.MustCompile(`language-(\S+)`)

// renderFencedCode renders a pre element whose first child is a code
// element as a fenced block tagged with the language-* class.
func renderFencedCode(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	code := n.FirstChild
	if code == nil || code.Type != html.ElementNode || code.Data != "code" {
		return converter.RenderTryNext
	}

	var lang string
	if m := languageRe.FindStringSubmatch(dom.GetAttributeOr(code, "class", "")); m != nil {
		lang = m[1]
	}
	text := strings.TrimSuffix(goquery.NewDocumentFromNode(code).Text(), "\n")

	w.WriteString("\n\n```" + lang + "\n" + text + "\n```\n\n")
	return converter.RenderSuccess
}

// renderTable renders every row of the table as a pipe row. A row holding
// a th cell is followed by a separator row with one column per cell. Rows
// of nested tables are left to the cell that holds them.
func renderTable(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	var out strings.Builder
	out.WriteString("\n\n")
	for _, row := range tableRows(goquery.NewDocumentFromNode(n).Selection) {
		cells := row.ChildrenFiltered("th, td")
		if cells.Length() == 0 {
			continue
		}
		out.WriteString("|")
		header := false
		cells.Each(func(_ int, cell *goquery.Selection) {
			if goquery.NodeName(cell) == "th" {
				header = true
			}
			var buf bytes.Buffer
			ctx.RenderChildNodes(ctx, &buf, cell.Nodes[0])
			out.WriteString(" " + cellText(buf.String()) + " |")
		})
		out.WriteString("\n")
		if header {
			out.WriteString("|" + strings.Repeat(" --- |", cells.Length()) + "\n")
		}
	}
	out.WriteString("\n")

	w.WriteString(out.String())
	return converter.RenderSuccess
}

// tableRows returns the rows that belong to table itself, in document
// order: its direct tr children and those of its row groups.
func tableRows(table *goquery.Selection) []*goquery.Selection {
	var rows []*goquery.Selection
	table.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "tr":
			rows = append(rows, child)
		case "thead", "tbody", "tfoot":
			child.ChildrenFiltered("tr").Each(func(_ int, row *goquery.Selection) {
				rows = append(rows, row)
			})
		}
	})
	return rows
}

// cellText flattens rendered cell content onto one line and escapes the
// pipes that would otherwise end the cell.
func cellText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, `\|`, "|")
	return strings.ReplaceAll(s, "|", `\|`)
}

func renderNothing(converter.Context, converter.Writer, *html.Node) converter.RenderStatus {
	return converter.RenderSuccess
}
