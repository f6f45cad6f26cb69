package pipeline

import (
	"regexp"
	"sort"
	"strings"
)

// texReplacements maps every markup-significant character to its escaped
// form. Callers apply TexEscape exactly once per field, at serialization
// time; re-applying would double-escape.
var texReplacements = map[string]string{
	"&": `\&`,
	"%": `\%`,
	"$": `\$`,
	"#": `\#`,
	"_": `\_`,
	"{": `\{`,
	"}": `\}`,
	"~": `\textasciitilde{}`,
	"^": `\^{}`,
	`\`: `\textbackslash{}`,
	"<": `\textless{}`,
	">": `\textgreater{}`,
}

// Longest pattern first, so no sequence is partially escaped twice.
var rxTexEscape = func() *regexp.Regexp {
	keys := make([]string, 0, len(texReplacements))
	for k := range texReplacements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	quoted := make([]string, 0, len(keys))
	for _, k := range keys {
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}()

// TexEscape escapes text for embedding in the badge template.
func TexEscape(text string) string {
	return rxTexEscape.ReplaceAllStringFunc(text, func(match string) string {
		return texReplacements[match]
	})
}
