package layout

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrMalformedSelector is returned when a selector cannot be parsed.
var ErrMalformedSelector = errors.New("malformed selector")

// Selector is a parsed descendant selector such as `#process .timeline`.
// Supported simple selectors are `#id`, `.class`, `[attr]` and
// `[attr=value]` (value optionally quoted), joined by whitespace.
type Selector struct {
	parts []compound
}

type compound struct {
	id      string
	classes []string
	attrs   []attrMatch
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

// ParseSelector parses a selector string.
func ParseSelector(raw string) (Selector, error) {
	tokens, err := lex(raw)
	if err != nil {
		return Selector{}, fmt.Errorf("%w: %q: %v", ErrMalformedSelector, raw, err)
	}
	if len(tokens) == 0 {
		return Selector{}, fmt.Errorf("%w: empty", ErrMalformedSelector)
	}

	var sel Selector
	for _, group := range splitOnWhitespace(tokens) {
		c, err := parseCompound(group)
		if err != nil {
			return Selector{}, fmt.Errorf("%w: %q: %v", ErrMalformedSelector, raw, err)
		}
		sel.parts = append(sel.parts, c)
	}
	return sel, nil
}

type token struct {
	tt   css.TokenType
	data string
}

// lex tokenizes raw. Comments are dropped and whitespace runs collapse to
// one token, with none at either end.
func lex(raw string) ([]token, error) {
	l := css.NewLexer(parse.NewInput(strings.NewReader(raw)))
	var tokens []token
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			for len(tokens) > 0 && tokens[len(tokens)-1].tt == css.WhitespaceToken {
				tokens = tokens[:len(tokens)-1]
			}
			return tokens, nil
		case css.CommentToken:
			continue
		case css.WhitespaceToken:
			if len(tokens) == 0 || tokens[len(tokens)-1].tt == css.WhitespaceToken {
				continue
			}
		}
		tokens = append(tokens, token{tt: tt, data: string(data)})
	}
}

// splitOnWhitespace groups tokens into compounds. Whitespace inside an
// attribute selector does not separate compounds.
func splitOnWhitespace(tokens []token) [][]token {
	var (
		groups  [][]token
		current []token
		depth   int
	)
	for _, t := range tokens {
		switch t.tt {
		case css.LeftBracketToken:
			depth++
		case css.RightBracketToken:
			depth--
		case css.WhitespaceToken:
			if depth == 0 {
				groups = append(groups, current)
				current = nil
				continue
			}
		}
		current = append(current, t)
	}
	return append(groups, current)
}

func parseCompound(tokens []token) (compound, error) {
	var c compound
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch {
		case t.tt == css.HashToken:
			if c.id != "" {
				return c, errors.New("duplicate id")
			}
			c.id = t.data[1:]
		case t.tt == css.DelimToken && t.data == ".":
			if i+1 >= len(tokens) || tokens[i+1].tt != css.IdentToken {
				return c, errors.New("expected identifier after '.'")
			}
			i++
			c.classes = append(c.classes, tokens[i].data)
		case t.tt == css.LeftBracketToken:
			end := i + 1
			for end < len(tokens) && tokens[end].tt != css.RightBracketToken {
				end++
			}
			if end == len(tokens) {
				return c, errors.New("unterminated attribute selector")
			}
			a, err := parseAttr(tokens[i+1 : end])
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, a)
			i = end
		default:
			return c, fmt.Errorf("unexpected %q", t.data)
		}
	}
	return c, nil
}

func parseAttr(tokens []token) (attrMatch, error) {
	body := make([]token, 0, len(tokens))
	for _, t := range tokens {
		if t.tt != css.WhitespaceToken {
			body = append(body, t)
		}
	}
	if len(body) == 0 || body[0].tt != css.IdentToken {
		return attrMatch{}, errors.New("expected attribute name")
	}
	a := attrMatch{name: body[0].data}
	switch {
	case len(body) == 1:
		return a, nil
	case len(body) == 3 && body[1].tt == css.DelimToken && body[1].data == "=":
	default:
		return attrMatch{}, fmt.Errorf("bad attribute selector for %q", a.name)
	}

	v := body[2]
	switch v.tt {
	case css.IdentToken, css.NumberToken:
		a.value = v.data
	case css.StringToken:
		a.value = v.data[1 : len(v.data)-1]
	default:
		return attrMatch{}, fmt.Errorf("bad attribute value %q", v.data)
	}
	a.hasValue = true
	return a, nil
}

func (c compound) matches(n *Node) bool {
	if c.id != "" && n.ID != c.id {
		return false
	}
	for _, cls := range c.classes {
		if !n.HasClass(cls) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := n.Attr(a.name)
		if !ok || a.hasValue && v != a.value {
			return false
		}
	}
	return true
}

// Matches reports whether the node satisfies the selector.
func (s Selector) Matches(n *Node) bool {
	if len(s.parts) == 0 || !s.parts[len(s.parts)-1].matches(n) {
		return false
	}
	cur := n.parent
	for i := len(s.parts) - 2; i >= 0; i-- {
		for cur != nil && !s.parts[i].matches(cur) {
			cur = cur.parent
		}
		if cur == nil {
			return false
		}
		cur = cur.parent
	}
	return true
}

// Query returns the first descendant of n, in document order, that matches
// the selector. A nil node is returned when nothing matches.
func (n *Node) Query(selector string) (*Node, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	var found *Node
	n.Walk(func(c *Node) bool {
		if sel.Matches(c) {
			found = c
			return false
		}
		return true
	})
	return found, nil
}
