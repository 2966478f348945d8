package printer

import (
	"io"
	"strings"

	"github.com/npillmayer/scoretree/ast"
)

// Glyphs is a set of tree guides. Every guide must have the same display
// width.
type Glyphs struct {
	Tee    string // connector of a child with following siblings
	Corner string // connector of the last child
	Pipe   string // ancestor guide, ancestor has following siblings
	Blank  string // ancestor guide, ancestor is a last child
}

// Unicode guides use box drawing characters.
var Unicode = Glyphs{
	Tee:    "├── ",
	Corner: "└── ",
	Pipe:   "│   ",
	Blank:  "    ",
}

// ASCII guides are for terminals which cannot display box drawing characters
// single-width.
var ASCII = Glyphs{
	Tee:    "|-- ",
	Corner: "`-- ",
	Pipe:   "|   ",
	Blank:  "    ",
}

// Styler decorates the KIND label of a line, e.g. with terminal colors.
type Styler func(kind ast.Kind, label string) string

type printer struct {
	glyphs Glyphs
	style  Styler
}

// Option configures printing.
type Option func(*printer)

// WithGlyphs sets the tree guides. The default is Unicode.
func WithGlyphs(g Glyphs) Option {
	return func(pr *printer) {
		pr.glyphs = g
	}
}

// WithStyler sets a styler for KIND labels. Passing nil leaves labels
// unstyled.
func WithStyler(s Styler) Option {
	return func(pr *printer) {
		pr.style = s
	}
}

// Fprint writes the tree rooted at n to w. n need not be a SCORE; printing
// a sub-tree starts with n as the top-level line.
func Fprint(w io.Writer, n *ast.Node, opts ...Option) error {
	_, err := io.WriteString(w, String(n, opts...))
	return err
}

// String renders the tree rooted at n, with a trailing newline.
// It returns the empty string for a nil node.
func String(n *ast.Node, opts ...Option) string {
	if n == nil {
		return ""
	}
	pr := &printer{glyphs: Unicode}
	for _, opt := range opts {
		opt(pr)
	}
	var b strings.Builder
	pr.line(&b, n, "", true)
	T().Debugf("printed tree of %v", n)
	return b.String()
}

// line prints n and its children. prefix holds the guides of n's ancestors,
// top is true for the node printing started with.
func (pr *printer) line(b *strings.Builder, n *ast.Node, prefix string, top bool) {
	var childPrefix string
	if !top {
		b.WriteString(prefix)
		if n.IsLastChild() {
			b.WriteString(pr.glyphs.Corner)
			childPrefix = prefix + pr.glyphs.Blank
		} else {
			b.WriteString(pr.glyphs.Tee)
			childPrefix = prefix + pr.glyphs.Pipe
		}
	}
	label := n.Kind().String()
	if pr.style != nil {
		label = pr.style(n.Kind(), label)
	}
	b.WriteString(label)
	if n.HasValue() {
		b.WriteString(": ")
		b.WriteString(n.Value())
	}
	b.WriteByte('\n')
	for _, ch := range n.Children() {
		pr.line(b, ch, childPrefix, false)
	}
}
