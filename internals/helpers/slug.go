package helper

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

func stripMarks(s string) string {
	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // mark nonspacing
			continue
		}
		buf = append(buf, r)
	}
	return string(buf)
}

// Slugify mengubah teks bebas jadi slug [a-z0-9-], dipakai untuk nama file export.
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = stripMarks(strings.ToLower(strings.TrimSpace(s)))
	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > maxLen {
		s = strings.Trim(string([]rune(s)[:maxLen]), "-")
	}
	if s == "" {
		s = "item"
	}
	return s
}

// NormalizeName: kunci perbandingan nama case/diacritic-insensitive
// ("  José  MARIA " -> "jose maria").
func NormalizeName(s string) string {
	s = stripMarks(strings.ToLower(strings.TrimSpace(s)))
	return reSpaces.ReplaceAllString(s, " ")
}

// EqualNames membandingkan dua nama lewat NormalizeName.
func EqualNames(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
