package markup

import (
	"strings"

	"askbox/internal/application/port/output"
	"askbox/internal/domain/entity"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ output.AnswerRenderer = (*Renderer)(nil)

const sourcePrefix = "\n\nSource: "

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderAnswer builds <pre>answer</pre>, followed by a source link when the
// answer carries one. All text is escaped by the html renderer.
func (r *Renderer) RenderAnswer(answer entity.Answer) entity.Markup {
	nodes := []*xhtml.Node{element(atom.Pre, nil, text(answer.Answer))}

	if answer.HasSource() {
		nodes = append(nodes,
			text(sourcePrefix),
			element(atom.A, []xhtml.Attribute{
				{Key: "href", Val: answer.Source},
				{Key: "target", Val: "_blank"},
				{Key: "rel", Val: "noopener noreferrer"},
			}, text(answer.Source)),
		)
	}

	var sb strings.Builder
	for _, n := range nodes {
		if err := xhtml.Render(&sb, n); err != nil {
			return entity.Markup("<pre>" + xhtml.EscapeString(answer.Answer) + "</pre>")
		}
	}
	return entity.Markup(sb.String())
}

func element(a atom.Atom, attrs []xhtml.Attribute, children ...*xhtml.Node) *xhtml.Node {
	n := &xhtml.Node{
		Type:     xhtml.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.TextNode, Data: s}
}
