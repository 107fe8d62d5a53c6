// Package demoname derives stable on-disk filenames for ingested demos
// Map names arrive from the external API and from community servers, so they
// may carry unicode decorations. Fold order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// then a final slug pass for filesystem and URL safety
package demoname

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented fold
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// Fold returns the folded form of s following the pipeline above
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return strings.TrimSpace(ns)
}

// ForMatch builds the demo filename for a match on a given map
// slug.Make keeps the result safe for both the filesystem and mirror keys
func ForMatch(mapName string, matchID uint64) string {
	m := slug.Make(Fold(mapName))
	if m == "" {
		m = "match"
	}
	return fmt.Sprintf("%s_%d.dem", m, matchID)
}
