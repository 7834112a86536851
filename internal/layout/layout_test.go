package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree() (root, section, inner, card *Node) {
	root = NewNode("page")
	section = NewNode("process", "section")
	wrapper := NewNode("", "frame")
	inner = NewNode("process-timeline-scroll", "timeline")
	inner.SetAttr(AttrAllowScroll, "true")
	card = NewNode("step-1", "card")
	inner.Append(card)
	wrapper.Append(inner)
	section.Append(wrapper)
	root.Append(section)
	return root, section, inner, card
}

func TestQuery(t *testing.T) {
	_, section, inner, card := buildTree()

	got, err := section.Query("#process-timeline-scroll")
	require.NoError(t, err)
	assert.Same(t, inner, got)

	got, err = section.Query(".frame .card")
	require.NoError(t, err)
	assert.Same(t, card, got)

	got, err = section.Query("[data-allow-scroll='true']")
	require.NoError(t, err)
	assert.Same(t, inner, got)

	got, err = section.Query("#missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestQueryTokenForms(t *testing.T) {
	_, section, inner, card := buildTree()
	card.SetAttr("data-step", "1")

	for raw, want := range map[string]*Node{
		"  .frame   .timeline.card  ":       nil,
		".frame .timeline .card":            card,
		"#process-timeline-scroll.timeline": inner,
		`[ data-allow-scroll = "true" ]`:    inner,
		"[data-allow-scroll=true]":          inner,
		"[data-step=1]":                     card,
		"[data-step]":                       card,
		".frame /* wrapper */ #step-1":      card,
		`.timeline [data-step="2"]`:         nil,
	} {
		got, err := section.Query(raw)
		require.NoError(t, err, raw)
		assert.Same(t, want, got, raw)
	}
}

func TestQueryMalformed(t *testing.T) {
	_, section, _, _ := buildTree()

	for _, raw := range []string{"", "   ", "#", "#(", "..x", "[data", "div>", "#a#b", "[=x]", "[a=b c]", "[a b]"} {
		_, err := section.Query(raw)
		assert.ErrorIs(t, err, ErrMalformedSelector, raw)
	}
}

func TestClosestAllowScroll(t *testing.T) {
	_, section, inner, card := buildTree()

	assert.Same(t, inner, card.AllowScrollTarget())
	assert.Nil(t, section.AllowScrollTarget())
	assert.True(t, section.Contains(card))
	assert.False(t, card.Contains(section))
}

func TestAppendReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	a.Append(c)
	b.Append(c)

	assert.Empty(t, a.Children())
	assert.Equal(t, []*Node{c}, b.Children())
	assert.Same(t, b, c.Parent())
}

func TestSetScrollTopClamps(t *testing.T) {
	n := NewNode("box")
	n.ScrollHeight = 500
	n.ClientHeight = 200

	n.SetScrollTop(1000)
	assert.Equal(t, 300.0, n.ScrollTop)
	n.SetScrollTop(-20)
	assert.Equal(t, 0.0, n.ScrollTop)
}
