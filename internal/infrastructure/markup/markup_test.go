package markup

import (
	"strings"
	"testing"

	"askbox/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAnswer_WithSource(t *testing.T) {
	m := NewRenderer().RenderAnswer(entity.Answer{Answer: "42", Source: "http://example.com"})

	doc, err := Inspect(m)
	require.NoError(t, err)

	assert.Equal(t, []string{"42"}, doc.Preformatted)
	require.Len(t, doc.Links, 1)
	assert.Equal(t, Link{Href: "http://example.com", Text: "http://example.com", Target: "_blank"}, doc.Links[0])
	assert.Equal(t, "42\n\nSource: http://example.com", doc.Text)
	assert.True(t, strings.HasPrefix(m.String(), "<pre>42</pre>"), "pre block must come first: %s", m)
}

func TestRenderAnswer_WithoutSource(t *testing.T) {
	m := NewRenderer().RenderAnswer(entity.Answer{Answer: "hello"})

	assert.Equal(t, entity.Markup("<pre>hello</pre>"), m)

	doc, err := Inspect(m)
	require.NoError(t, err)
	assert.Empty(t, doc.Links)
	assert.NotContains(t, doc.Text, "Source:")
}

func TestRenderAnswer_EscapesContent(t *testing.T) {
	m := NewRenderer().RenderAnswer(entity.Answer{
		Answer: `<script>alert("x")</script> & more`,
		Source: `http://example.com/?a=1&b="2"`,
	})

	assert.NotContains(t, m.String(), "<script>")

	doc, err := Inspect(m)
	require.NoError(t, err)
	assert.Equal(t, []string{`<script>alert("x")</script> & more`}, doc.Preformatted)
	require.Len(t, doc.Links, 1)
	assert.Equal(t, `http://example.com/?a=1&b="2"`, doc.Links[0].Href)
	assert.Equal(t, `http://example.com/?a=1&b="2"`, doc.Links[0].Text)
}

func TestRenderAnswer_MultilineAnswer(t *testing.T) {
	answer := "line one\n  indented\nline three"
	doc, err := Inspect(NewRenderer().RenderAnswer(entity.Answer{Answer: answer}))
	require.NoError(t, err)

	assert.Equal(t, []string{answer}, doc.Preformatted)
}

func TestInspect_PlainText(t *testing.T) {
	doc, err := Inspect("just text")
	require.NoError(t, err)

	assert.Empty(t, doc.Preformatted)
	assert.Empty(t, doc.Links)
	assert.Equal(t, "just text", doc.Text)
}

func TestClean_RemovesScriptAndHandlers(t *testing.T) {
	in := entity.Markup(`<pre onclick="steal()">ok</pre><script>alert(1)</script><a href="javascript:alert(1)">x</a><!-- c -->`)

	out := Clean(in, nil).String()

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "javascript:")
	assert.NotContains(t, out, "<!--")
	assert.Contains(t, out, "<pre>ok</pre>")
}

func TestClean_KeepsRenderedAnswer(t *testing.T) {
	in := NewRenderer().RenderAnswer(entity.Answer{Answer: "42", Source: "http://example.com"})

	assert.Equal(t, in, Clean(in, &DefaultCleanConfig))
}

func TestClean_NestedRemoval(t *testing.T) {
	out := Clean(`<div><p>keep</p><style>.x{}</style><iframe src="x"></iframe></div>`, nil).String()

	assert.Equal(t, "<div><p>keep</p></div>", out)
}
