// ABOUTME: Plain-text rendering of report markdown for a terminal
// ABOUTME: Walks the goldmark AST and writes headings, lists, quotes and percentage bars

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Options control RenderText.
type Options struct {
	// Heading formats a heading line. Defaults to "#"-prefixed text.
	Heading func(level int, text string) string

	// Bars draws a progress bar under every paragraph or list item that
	// contains a percentage.
	Bars     bool
	BarWidth int
}

func defaultHeading(level int, text string) string {
	return strings.Repeat("#", level) + " " + text
}

// RenderText writes markdown to w as plain text.
func RenderText(w io.Writer, markdown string, opts Options) error {
	if opts.Heading == nil {
		opts.Heading = defaultHeading
	}
	src := []byte(markdown)
	r := &textRenderer{src: src, opts: opts}
	r.blocks(parse(src), "")

	_, err := io.WriteString(w, strings.TrimRight(r.b.String(), "\n")+"\n")
	return err
}

type textRenderer struct {
	b    strings.Builder
	src  []byte
	opts Options
}

func (r *textRenderer) line(prefix, s string) {
	r.b.WriteString(prefix)
	r.b.WriteString(s)
	r.b.WriteByte('\n')
}

func (r *textRenderer) bars(prefix, s string) {
	if !r.opts.Bars {
		return
	}
	for _, v := range Percentages(s) {
		r.line(prefix+"  ", fmt.Sprintf("%s %3d%%", Bar(v, r.opts.BarWidth), v))
	}
}

func (r *textRenderer) blocks(parent ast.Node, prefix string) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Heading:
			r.line(prefix, r.opts.Heading(n.Level, inlineText(n, r.src)))
			r.b.WriteByte('\n')
		case *ast.Paragraph, *ast.TextBlock:
			s := inlineText(n, r.src)
			r.line(prefix, s)
			r.bars(prefix, s)
			if _, ok := n.(*ast.Paragraph); ok && prefix == "" {
				r.b.WriteByte('\n')
			}
		case *ast.List:
			r.list(n, prefix)
			if prefix == "" {
				r.b.WriteByte('\n')
			}
		case *ast.Blockquote:
			r.blocks(n, prefix+"│ ")
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				r.line(prefix+"    ", strings.TrimRight(string(seg.Value(r.src)), "\n"))
			}
			r.b.WriteByte('\n')
		case *ast.ThematicBreak:
			r.line(prefix, strings.Repeat("─", 40))
			r.b.WriteByte('\n')
		default:
			r.blocks(c, prefix)
		}
	}
}

func (r *textRenderer) list(l *ast.List, prefix string) {
	i := 0
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", l.Start+i)
		}
		i++

		pad := strings.Repeat(" ", len([]rune(marker)))
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				s := inlineText(c, r.src)
				if first {
					r.line(prefix+marker, s)
				} else {
					r.line(prefix+pad, s)
				}
				r.bars(prefix+pad, s)
			case *ast.List:
				r.list(c.(*ast.List), prefix+pad)
			default:
				r.blocks(c, prefix+pad)
			}
			first = false
		}
	}
}
