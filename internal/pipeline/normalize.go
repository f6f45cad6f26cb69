package pipeline

import (
	"regexp"
	"strings"

	"badges/internal/config"
	"badges/internal/util"
)

var reDegreeSuffix = regexp.MustCompile(`(B\.?Sc|M\.?Sc|Dipl\.[- ]*(Geogr|Geol|Ing)\.?)[ ]+`)

// Normalizer applies the data-driven cleanup rules to person and company
// names. Rule order comes from the configuration and is semantic.
type Normalizer struct {
	rules config.Rules
}

func NewNormalizer(rules config.Rules) *Normalizer {
	return &Normalizer{rules: rules}
}

// PersonName cleans a given or family name for printing. The second return
// value reports whether a comma survived all rules, which means an
// un-normalized "Family, Given" slipped through and the row needs a manual
// check.
func (n *Normalizer) PersonName(name string) (string, bool) {
	s := strings.ReplaceAll(name, ", BSc", "")
	s = reDegreeSuffix.ReplaceAllString(s, "")
	for _, rx := range n.rules.StripFromNames {
		s = rx.ReplaceAllString(s, "")
	}
	s = util.StripParenthetical(s)
	s = util.BeforeSeparator(s, "|")
	s = strings.TrimSpace(s)

	needsCheck := strings.Contains(s, ",")
	s = util.BreakLongTokens(s, n.rules.NameBreakLen)
	return s, needsCheck
}

// DisplayName collapses a reversed "Family, Given" value into its natural
// order, used to suggest a resolution for flagged rows.
func (n *Normalizer) DisplayName(name string) string {
	s := strings.ReplaceAll(name, ", BSc", "")
	if i := strings.Index(s, " ("); i > 0 {
		s = s[:i]
	}
	s = reDegreeSuffix.ReplaceAllString(s, "")
	for _, rx := range n.rules.StripFromNames {
		s = rx.ReplaceAllString(s, "")
	}
	return util.CollapseSpaces(util.ReverseCommaParts(s))
}

// Company canonicalizes an organization name. The first rule whose pattern
// matches replaces the whole value and ends the evaluation; a match also
// settles the value, so no comma check runs on it. Without a match the text
// gets the generic cleanup, and a remaining comma keeps only the part before
// it and flags the record for manual review.
func (n *Normalizer) Company(text string) (string, bool) {
	for _, rule := range n.rules.Companies {
		if rule.Pattern.MatchString(text) {
			return rule.Canonical, false
		}
	}

	s := util.StripParenthetical(text)
	s = util.BeforeSeparator(s, "|")
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ","); i >= 0 {
		return strings.TrimSpace(s[:i]), true
	}
	return s, false
}
