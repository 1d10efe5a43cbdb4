package admin

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// markdownClasses styles the elements a template body may contain.
// Fenced and indented code blocks are styled by the container's
// stylesheet because the html renderer ignores their attributes.
var markdownClasses = map[ast.NodeKind]string{
	ast.KindParagraph:  "mb-2 text-slate-700 leading-relaxed",
	ast.KindCodeSpan:   "bg-slate-100 text-pink-600 px-1 py-0.5 rounded text-sm font-mono",
	ast.KindList:       "mb-2 ml-4 space-y-1",
	ast.KindListItem:   "text-slate-700",
	ast.KindBlockquote: "border-l-4 border-blue-300 pl-4 italic text-slate-600 mb-2",
	ast.KindLink:       "text-blue-600 underline hover:text-blue-800",
}

var headingClasses = map[int]string{
	1: "text-xl font-bold text-slate-900 mb-2",
	2: "text-lg font-semibold text-slate-800 mb-2",
	3: "text-base font-semibold text-slate-800 mb-1",
}

const (
	strongClass = "font-bold text-slate-900"
	emClass     = "italic"
	orderedList = "mb-2 ml-4 space-y-1 list-decimal"
	bulletList  = "mb-2 ml-4 space-y-1 list-disc"
)

type classTransformer struct{}

func (classTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if class := classFor(n); class != "" {
			n.SetAttributeString("class", []byte(class))
		}
		return ast.WalkContinue, nil
	})
}

func classFor(n ast.Node) string {
	switch node := n.(type) {
	case *ast.Heading:
		return headingClasses[node.Level]
	case *ast.Emphasis:
		if node.Level >= 2 {
			return strongClass
		}
		return emClass
	case *ast.List:
		if node.IsOrdered() {
			return orderedList
		}
		return bulletList
	}
	return markdownClasses[n.Kind()]
}

// MarkdownRenderer converts template bodies into HTML. Raw HTML in the
// source is dropped and unsafe link schemes are removed by the renderer
// defaults; nothing else is sanitized.
type MarkdownRenderer struct {
	md    goldmark.Markdown
	cache RenderCache
}

// NewMarkdownRenderer builds a GFM renderer; cache may be nil.
func NewMarkdownRenderer(cache RenderCache) *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(classTransformer{}, 100)),
		),
	)
	return &MarkdownRenderer{md: md, cache: cache}
}

// Render returns the HTML for source.
func (r *MarkdownRenderer) Render(source string) (string, error) {
	if r == nil {
		return "", fmt.Errorf("admin: markdown renderer not configured")
	}
	render := func() (string, error) {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(source), &buf); err != nil {
			return "", fmt.Errorf("admin: render markdown: %w", err)
		}
		return buf.String(), nil
	}
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender("md:"+contentHash(source), render)
}
