// ABOUTME: Flat tag scanner over raw markup using the x/net/html tokenizer
// ABOUTME: Emits meta and link start tags lazily in document order without building a tree

package extractor

import (
	"strings"

	"golang.org/x/net/html"
)

// tag is a start or self-closing element with its attributes.
// Attribute names are lower-cased by the tokenizer; the first occurrence of a
// duplicated attribute wins, as in browsers.
type tag struct {
	name  string
	attrs map[string]string
}

// attr returns an attribute value and whether the attribute was present
func (t tag) attr(name string) (string, bool) {
	v, ok := t.attrs[name]
	return v, ok
}

// scanner walks markup one tag at a time. Each call to newScanner starts a
// fresh pass; scanners share no state.
type scanner struct {
	z     *html.Tokenizer
	names map[string]struct{}
	done  bool
}

// newScanner returns a scanner that yields only the named elements
func newScanner(markup string, names ...string) *scanner {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return &scanner{
		z:     html.NewTokenizer(strings.NewReader(markup)),
		names: set,
	}
}

// next returns the next matching tag. ok is false once the input is exhausted.
// Malformed markup never stops the scan early; the tokenizer recovers and
// unmatched fragments are skipped.
func (s *scanner) next() (t tag, ok bool) {
	for !s.done {
		switch s.z.Next() {
		case html.ErrorToken:
			s.done = true
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := s.z.TagName()
			if _, want := s.names[string(name)]; !want {
				continue
			}
			t = tag{name: string(name), attrs: make(map[string]string)}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = s.z.TagAttr()
				k := string(key)
				if _, seen := t.attrs[k]; !seen {
					t.attrs[k] = string(val)
				}
			}
			return t, true
		}
	}
	return tag{}, false
}
