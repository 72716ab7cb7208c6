package textract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// badCharacters repairs UTF-8 punctuation that was decoded as Windows-1252
// somewhere upstream, and flattens typographic quotes.
var badCharacters = strings.NewReplacer(
	"â€œ", `"`,
	"â€\u009d", `"`,
	"â€™", "'",
	"â€˜", "'",
	"â€¦", "…",
	"â€“", "–",
	"â€”", "—",
	"â€", `"`,
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
)

// allowedChars is the set of characters that survive cleansing: printable
// ASCII, Latin-1 through Greek Extended, a handful of dashes, quotes and
// symbols, Glagolitic through Hangul, and the fullwidth forms.
var allowedChars = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0020, Hi: 0x007e, Stride: 1},
		{Lo: 0x0080, Hi: 0x1fff, Stride: 1},
		{Lo: 0x2013, Hi: 0x2015, Stride: 1},
		{Lo: 0x2018, Hi: 0x2019, Stride: 1},
		{Lo: 0x201c, Hi: 0x201d, Stride: 1},
		{Lo: 0x2026, Hi: 0x2026, Stride: 1},
		{Lo: 0x20ac, Hi: 0x20ac, Stride: 1},
		{Lo: 0x2116, Hi: 0x2116, Stride: 1},
		{Lo: 0x2c00, Hi: 0xd7ff, Stride: 1},
		{Lo: 0xfb50, Hi: 0xfb50, Stride: 1},
		{Lo: 0xfdff, Hi: 0xfdff, Stride: 1},
		{Lo: 0xfe70, Hi: 0xfe70, Stride: 1},
		{Lo: 0xfeff, Hi: 0xfeff, Stride: 1},
		{Lo: 0xff01, Hi: 0xffe6, Stride: 1},
	},
	LatinOffset: 1,
}

var reWhitespaceRun = regexp.MustCompile(`[ \t\v\x{00A0}]{2,}`)

// Cleanse normalizes raw extractor output. It is applied to every
// successful extraction.
func Cleanse(text string, opts *Options) string {
	if opts == nil {
		opts = &Options{}
	}

	text = badCharacters.Replace(text)

	keepBreaks := opts.PreserveLineBreaks || opts.PreserveOnlyMultipleLineBreaks
	if opts.PreserveOnlyMultipleLineBreaks {
		text = strings.TrimFunc(foldSingleLineBreaks(text), isTrimmable)
	}
	text = whitelist(text, keepBreaks)

	text = dropLoneSpaces(text)
	text = reWhitespaceRun.ReplaceAllString(text, " ")

	return html.UnescapeString(text)
}

// isTrimmable matches what trimming removes at the ends of the text: white
// space and the byte order mark.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func isAllowed(r rune, keepBreaks bool) bool {
	if keepBreaks && (r == '\n' || r == '\r') {
		return true
	}
	return unicode.Is(allowedChars, r)
}

// whitelist writes a space in place of every run of disallowed characters
// and one more space at every position between the remaining characters,
// including both ends. dropLoneSpaces then keeps only the spaces that have
// a neighbour, so a run of disallowed characters or of original spaces
// ends up as one separator and everything else is untouched.
func whitelist(s string, keepBreaks bool) string {
	var b strings.Builder
	b.Grow(2*len(s) + 1)
	for i := 0; ; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i < len(s) && !isAllowed(r, keepBreaks) {
			for i < len(s) && !isAllowed(r, keepBreaks) {
				i += size
				r, size = utf8.DecodeRuneInString(s[i:])
			}
			b.WriteByte(' ')
		}
		b.WriteByte(' ')
		if i >= len(s) {
			break
		}
		b.WriteRune(r)
		i += size
	}
	return b.String()
}

// dropLoneSpaces removes every space that is not followed by another space.
func dropLoneSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' && (i+1 == len(s) || s[i+1] != ' ') {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// foldSingleLineBreaks replaces each line break that has no line break
// directly before or after it with a space.
func foldSingleLineBreaks(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] != '\n' {
			continue
		}
		if (i == 0 || s[i-1] != '\n') && (i+1 == len(s) || s[i+1] != '\n') {
			b[i] = ' '
		}
	}
	return string(b)
}
