package branchver

import (
	"regexp"
	"strings"
)

// Artifact versions are compared with the rules setuptools applies to
// pre-PEP440 version strings. Alphabetic suffixes sort against an implicit
// trailing "final" marker, so "0.14rc2" < "0.14" < "0.14next", and the "_NNN"
// snapshot field sorts before the unsuffixed version it leads up to.

// componentRe splits a version string into numeric runs, alphabetic runs and
// the "." and "-" separators; anything else (notably "_") passes through as
// its own component.
var componentRe = regexp.MustCompile(`[0-9]+|[a-z]+|\.|-`)

var componentReplacements = map[string]string{
	"pre":     "c",
	"preview": "c",
	"rc":      "c",
	"dev":     "@",
	"-":       "final-",
}

// Compare orders two artifact versions, returning -1, 0 or 1.
func Compare(a, b string) int {
	ka, kb := versionKey(a), versionKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		switch {
		case ka[i] < kb[i]:
			return -1
		case ka[i] > kb[i]:
			return 1
		}
	}
	switch {
	case len(ka) < len(kb):
		return -1
	case len(ka) > len(kb):
		return 1
	}
	return 0
}

// Less reports whether artifact version a orders strictly before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// versionKey converts a version string into a sequence of parts whose
// element-wise lexicographic comparison yields the version ordering. Numeric
// parts are zero-padded so string comparison matches numeric comparison;
// non-numeric parts carry a "*" prefix so they sort before numbers.
func versionKey(v string) []string {
	var key []string
	for _, part := range versionParts(strings.ToLower(v)) {
		if strings.HasPrefix(part, "*") {
			// A pre-release marker cancels a preceding "-" separator.
			if part < "*final" {
				for len(key) > 0 && key[len(key)-1] == "*final-" {
					key = key[:len(key)-1]
				}
			}
			// Trailing zeros in a numeric series are insignificant.
			for len(key) > 0 && key[len(key)-1] == "00000000" {
				key = key[:len(key)-1]
			}
		}
		key = append(key, part)
	}
	return key
}

func versionParts(v string) []string {
	var parts []string
	emit := func(part string) {
		if r, ok := componentReplacements[part]; ok {
			part = r
		}
		if part == "" || part == "." {
			return
		}
		if part[0] >= '0' && part[0] <= '9' {
			parts = append(parts, zfill(part, 8))
		} else {
			parts = append(parts, "*"+part)
		}
	}

	last := 0
	for _, m := range componentRe.FindAllStringIndex(v, -1) {
		if m[0] > last {
			emit(v[last:m[0]])
		}
		emit(v[m[0]:m[1]])
		last = m[1]
	}
	if last < len(v) {
		emit(v[last:])
	}

	// The marker every alphabetic suffix is ordered against.
	parts = append(parts, "*final")
	return parts
}

func zfill(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
