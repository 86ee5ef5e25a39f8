// Package excerpt turns HTML answer bodies into short plain-text previews
// Pipeline order
// 1 Strip HTML tags
// 2 Decode the small entity set seen in practice
// 3 UTF-8 repair drop invalid bytes
// 4 Remove zero-width and format chars
// 5 Collapse whitespace to single spaces and trim
// 6 Truncate to a budget, appending an ellipsis only when something was cut
package excerpt

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLen is the excerpt character budget before the ellipsis marker
const MaxLen = 180

// ellipsis is appended only when truncation actually occurred
const ellipsis = "..."

// entityReplacer decodes the fixed entity set upstream bodies actually contain.
// &amp; goes last so decoded ampersands are not re-expanded
var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
	"&amp;", "&",
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
		)
	},
}

// Clean strips tags and entities from an HTML fragment and normalizes whitespace
func Clean(html string) string {
	if html == "" {
		return ""
	}

	s := stripTags(html)
	s = entityReplacer.Replace(s)
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return collapseSpaces(ns)
}

// Make cleans an HTML fragment and truncates it to MaxLen runes,
// appending the ellipsis marker only when truncation occurred
func Make(html string) string {
	s := Clean(html)
	r := []rune(s)
	if len(r) <= MaxLen {
		return s
	}
	return strings.TrimRight(string(r[:MaxLen]), " ") + ellipsis
}

// stripTags removes anything between < and > without parsing the markup
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			// a tag boundary separates words in rendered text
			if inTag {
				b.WriteRune(' ')
			}
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseSpaces folds any whitespace run into a single space and trims
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
