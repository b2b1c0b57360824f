package markup

import (
	"strings"

	"askbox/internal/domain/entity"

	xhtml "golang.org/x/net/html"
)

type CleanConfig struct {
	TagsToRemove  []string
	AttrsToRemove []string
}

var DefaultCleanConfig = CleanConfig{
	TagsToRemove: []string{
		"script", "style", "noscript", "iframe", "object", "embed", "link", "meta",
	},
	AttrsToRemove: []string{
		"style", "srcdoc", "formaction",
	},
}

// Clean removes active content from a fragment before it is assigned to
// innerHTML. A fragment that fails to parse is returned as escaped text.
func Clean(m entity.Markup, cfg *CleanConfig) entity.Markup {
	if cfg == nil {
		cfg = &DefaultCleanConfig
	}

	nodes, err := parseFragment(m)
	if err != nil {
		return entity.Markup(xhtml.EscapeString(string(m)))
	}

	var sb strings.Builder
	for _, n := range nodes {
		if n.Type == xhtml.CommentNode || (n.Type == xhtml.ElementNode && isOneOf(n.Data, cfg.TagsToRemove...)) {
			continue
		}
		cleanNode(n, cfg)
		_ = xhtml.Render(&sb, n)
	}
	return entity.Markup(sb.String())
}

func cleanNode(n *xhtml.Node, cfg *CleanConfig) {
	if n.Type == xhtml.CommentNode {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return
	}
	if n.Type != xhtml.ElementNode {
		return
	}

	if isOneOf(n.Data, cfg.TagsToRemove...) {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return
	}

	n.Attr = filterAttributes(n.Attr, cfg)

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		cleanNode(c, cfg)
		c = next
	}
}

func filterAttributes(attrs []xhtml.Attribute, cfg *CleanConfig) []xhtml.Attribute {
	var kept []xhtml.Attribute
	for _, a := range attrs {
		if shouldRemoveAttr(a, cfg) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

func shouldRemoveAttr(a xhtml.Attribute, cfg *CleanConfig) bool {
	key := strings.ToLower(a.Key)
	if isOneOf(key, cfg.AttrsToRemove...) {
		return true
	}
	if strings.HasPrefix(key, "on") {
		return true
	}
	if key == "href" || key == "src" {
		v := strings.ToLower(strings.TrimSpace(a.Val))
		return strings.HasPrefix(v, "javascript:")
	}
	return false
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
