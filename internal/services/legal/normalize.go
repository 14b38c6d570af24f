// Package legal extracts structured Croatian legal metadata from document
// text. Each detector is a pure function over text with its pattern
// dictionary kept as data; absence of a match is always a valid empty
// result, never an error.
package legal

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// diacriticFold maps Croatian diacritics onto their ASCII base letters
var diacriticFold = map[rune]rune{
	'č': 'c', 'ć': 'c', 'đ': 'd', 'š': 's', 'ž': 'z',
	'Č': 'c', 'Ć': 'c', 'Đ': 'd', 'Š': 's', 'Ž': 'z',
}

func foldRune(r rune) rune {
	if folded, ok := diacriticFold[r]; ok {
		return folded
	}
	return unicode.ToLower(r)
}

// foldString lowercases a string and folds Croatian diacritics
func foldString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(foldRune(r))
	}
	return b.String()
}

// normalizedText is document text normalized for dictionary matching
// (lowercase, diacritics folded, non-alphanumeric runs collapsed to a
// single space) together with an index map back to the original string,
// so every normalized match position can be reported with an original-text
// context snippet.
type normalizedText struct {
	text    string
	offsets []int // offsets[i] = byte offset in the original of normalized byte i
	source  string
}

// normalize builds the matching form of a document text. All emitted
// normalized runes are ASCII, so normalized byte positions and rune
// positions coincide and offsets can be byte-indexed.
func normalize(source string) normalizedText {
	var b strings.Builder
	b.Grow(len(source))
	offsets := make([]int, 0, len(source))

	pendingSpace := false
	for i, r := range source {
		folded := foldRune(r)
		if folded >= 'a' && folded <= 'z' || folded >= '0' && folded <= '9' {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
				offsets = append(offsets, i)
			}
			pendingSpace = false
			b.WriteRune(folded)
			offsets = append(offsets, i)
		} else {
			pendingSpace = true
		}
	}

	return normalizedText{text: b.String(), offsets: offsets, source: source}
}

// snippetRadius is how many original-text runes of context surround a match
const snippetRadius = 40

// snippet returns the original text around the normalized match starting at
// normStart (byte index into n.text), with leading/trailing ellipsis when
// truncated.
func (n normalizedText) snippet(normStart, normLen int) string {
	if normStart < 0 || normStart >= len(n.offsets) {
		return ""
	}
	origStart := n.offsets[normStart]
	normEnd := normStart + normLen - 1
	if normEnd >= len(n.offsets) {
		normEnd = len(n.offsets) - 1
	}
	origEnd := n.offsets[normEnd]
	if origEnd < len(n.source) {
		_, size := utf8.DecodeRuneInString(n.source[origEnd:])
		origEnd += size
	}

	start := origStart
	for i := 0; i < snippetRadius && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(n.source[:start])
		start -= size
	}
	end := origEnd
	for i := 0; i < snippetRadius && end < len(n.source); i++ {
		_, size := utf8.DecodeRuneInString(n.source[end:])
		end += size
	}

	prefix, suffix := "", ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(n.source) {
		suffix = "..."
	}

	return prefix + strings.TrimSpace(n.source[start:end]) + suffix
}

// countOccurrences counts non-overlapping occurrences of needle in haystack
// with word-boundary checks on both sides, so "sud" does not match inside
// "sudionik". Both inputs are expected in normalized form.
func countOccurrences(haystack, needle string) int {
	if needle == "" {
		return 0
	}
	count := 0
	offset := 0
	for {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			break
		}
		abs := offset + idx
		leftOK := abs == 0 || haystack[abs-1] == ' '
		rightEnd := abs + len(needle)
		rightOK := rightEnd == len(haystack) || haystack[rightEnd] == ' '
		if leftOK && rightOK {
			count++
		}
		offset = abs + len(needle)
	}
	return count
}
