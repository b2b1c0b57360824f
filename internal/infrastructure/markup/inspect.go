package markup

import (
	"fmt"
	"strings"

	"askbox/internal/domain/entity"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Link struct {
	Href   string
	Text   string
	Target string
}

// Document is what a reader sees in a rendered fragment.
type Document struct {
	Preformatted []string
	Links        []Link
	Text         string
}

// Inspect parses a fragment as if it were assigned to a <div>'s innerHTML.
func Inspect(m entity.Markup) (*Document, error) {
	nodes, err := parseFragment(m)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	var sb strings.Builder
	for _, n := range nodes {
		walk(n, doc, &sb)
	}
	doc.Text = sb.String()
	return doc, nil
}

func walk(n *xhtml.Node, doc *Document, sb *strings.Builder) {
	switch n.Type {
	case xhtml.TextNode:
		sb.WriteString(n.Data)
		return
	case xhtml.ElementNode:
		switch n.DataAtom {
		case atom.Pre:
			doc.Preformatted = append(doc.Preformatted, textContent(n))
		case atom.A:
			doc.Links = append(doc.Links, Link{
				Href:   attr(n, "href"),
				Text:   textContent(n),
				Target: attr(n, "target"),
			})
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, doc, sb)
	}
}

func textContent(n *xhtml.Node) string {
	var sb strings.Builder
	var collect func(*xhtml.Node)
	collect = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}

func attr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func parseFragment(m entity.Markup) ([]*xhtml.Node, error) {
	parent := &xhtml.Node{Type: xhtml.ElementNode, DataAtom: atom.Div, Data: "div"}
	nodes, err := xhtml.ParseFragment(strings.NewReader(string(m)), parent)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	return nodes, nil
}
