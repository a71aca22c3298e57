// ABOUTME: Table of contents extraction from report markdown
// ABOUTME: Parses with goldmark and derives stable, Turkish-aware heading anchors

package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxOutlineLevel is the deepest heading included in an outline.
const maxOutlineLevel = 3

// Heading is one outline entry.
type Heading struct {
	Level  int
	Text   string
	Anchor string
}

var (
	turkishLower = cases.Lower(language.Turkish)

	turkishFold = strings.NewReplacer(
		"ğ", "g", "ü", "u", "ş", "s", "ı", "i", "ö", "o", "ç", "c",
	)

	anchorSeparators = regexp.MustCompile("[\\s.,/#!$%^&*;:{}=\\-_`~()]")
	anchorRuns       = regexp.MustCompile(`-{2,}`)
)

// Anchor turns heading text into a fragment id: lower case, Turkish letters
// folded to ASCII, separators and punctuation collapsed to single dashes.
func Anchor(heading string) string {
	s := turkishFold.Replace(turkishLower.String(heading))
	s = anchorSeparators.ReplaceAllString(s, "-")
	s = anchorRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// anchorIDs hands out unique anchors, suffixing repeats with -1, -2, ...
type anchorIDs struct {
	seen map[string]int
}

func newAnchorIDs() *anchorIDs {
	return &anchorIDs{seen: make(map[string]int)}
}

func (a *anchorIDs) next(heading string) string {
	base := Anchor(heading)
	if base == "" {
		base = "section"
	}
	n := a.seen[base]
	a.seen[base]++
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

func parse(src []byte) ast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(src))
}

// Outline lists the level 1-3 headings of markdown in document order.
func Outline(markdown string) []Heading {
	src := []byte(markdown)
	doc := parse(src)
	ids := newAnchorIDs()

	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level <= maxOutlineLevel {
			out = append(out, Heading{
				Level:  h.Level,
				Text:   inlineText(h, src),
				Anchor: ids.next(rawLine(h, src)),
			})
		}
		return ast.WalkSkipChildren, nil
	})
	return out
}

// rawLine is the heading source as goldmark sees it when generating ids.
func rawLine(h *ast.Heading, src []byte) string {
	lines := h.Lines()
	if lines.Len() == 0 {
		return inlineText(h, src)
	}
	seg := lines.At(0)
	return string(seg.Value(src))
}

// inlineText flattens the inline content of n to plain text.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	writeInline(&b, n, src)
	return strings.TrimSpace(b.String())
}

func writeInline(b *strings.Builder, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.Label(src))
		case *ast.Link:
			writeInline(b, v, src)
			if dest := string(v.Destination); dest != "" {
				fmt.Fprintf(b, " (%s)", dest)
			}
		default:
			writeInline(b, c, src)
		}
	}
}
