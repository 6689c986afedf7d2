package utils

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r can belong to the core of a word.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// SplitWord separates leading and trailing punctuation from the word core.
// Apostrophes and hyphens are only kept when surrounded by word runes.
// A run with no word rune at all is returned whole as core.
func SplitWord(s string) (lead, core, trail string) {
	start := strings.IndexFunc(s, IsWordRune)
	if start < 0 {
		return "", s, ""
	}
	end := strings.LastIndexFunc(s, IsWordRune)
	_, size := utf8.DecodeRuneInString(s[end:])
	end += size
	return s[:start], s[start:end], s[end:]
}

// WordKey is the lookup key of a word: whitespace and edge punctuation removed,
// casing kept.
func WordKey(s string) string {
	_, core, _ := SplitWord(strings.TrimSpace(s))
	return core
}

// UpperFirst upper-cases the first rune of s and leaves the rest unchanged.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	up := unicode.ToUpper(r)
	if up == r {
		return s
	}
	return string(up) + s[size:]
}

// StartsUpper reports whether the first rune of s is upper case.
func StartsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	str := strconv.Itoa(n)
	if n < 1000 && n > -1000 {
		return str
	}
	sign := ""
	if str[0] == '-' {
		sign, str = "-", str[1:]
	}
	var b strings.Builder
	b.WriteString(sign)
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
