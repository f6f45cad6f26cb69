package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"badges/internal"
)

// RulesSpec is the serialized form of the event specific rule tables. Every
// list is ordered; the order is semantic (first match wins for company
// canonicalization, strip rules apply in declared order).
type RulesSpec struct {
	TicketPattern           string            `yaml:"ticket_pattern"`
	WorkshopCategoryPattern string            `yaml:"workshop_category_pattern"`
	Questions               []QuestionMapping `yaml:"questions"`
	Addons                  []AddonMapping    `yaml:"addons"`
	StripFromNames          []string          `yaml:"strip_from_names"`
	Companies               []CompanyRuleSpec `yaml:"companies"`
	NameBreakLen            int               `yaml:"name_break_len"`
}

type QuestionMapping struct {
	Code  string `yaml:"code"`
	Field string `yaml:"field"`
}

type AddonMapping struct {
	Product string `yaml:"product"`
	Field   string `yaml:"field"`
}

type CompanyRuleSpec struct {
	Canonical  string `yaml:"canonical"`
	Pattern    string `yaml:"pattern"`
	Literal    bool   `yaml:"literal"`
	IgnoreCase bool   `yaml:"ignore_case"`
}

// Rules is the compiled, validated form passed into the pipeline components.
type Rules struct {
	TicketPattern           *regexp.Regexp
	WorkshopCategoryPattern *regexp.Regexp
	Questions               []QuestionMapping
	Addons                  []AddonMapping
	StripFromNames          []*regexp.Regexp
	Companies               []CompanyRule
	NameBreakLen            int
	Schema                  internal.BadgeSchema
}

type CompanyRule struct {
	Canonical string
	Pattern   *regexp.Regexp
}

// LoadRules returns the compiled default tables, overlaid with the YAML file
// at path when one is given.
func LoadRules(path string) (Rules, error) {
	spec := DefaultRulesSpec()
	if path != "" {
		blob, err := os.ReadFile(path)
		if err != nil {
			return Rules{}, err
		}
		var overlay RulesSpec
		if err := yaml.Unmarshal(blob, &overlay); err != nil {
			return Rules{}, fmt.Errorf("rules file %s: %w", path, err)
		}
		spec = spec.merge(overlay)
	}
	return spec.Compile()
}

func (s RulesSpec) merge(overlay RulesSpec) RulesSpec {
	out := s
	if overlay.TicketPattern != "" {
		out.TicketPattern = overlay.TicketPattern
	}
	if overlay.WorkshopCategoryPattern != "" {
		out.WorkshopCategoryPattern = overlay.WorkshopCategoryPattern
	}
	if len(overlay.Questions) > 0 {
		out.Questions = overlay.Questions
	}
	if len(overlay.Addons) > 0 {
		out.Addons = overlay.Addons
	}
	if len(overlay.StripFromNames) > 0 {
		out.StripFromNames = overlay.StripFromNames
	}
	if len(overlay.Companies) > 0 {
		out.Companies = overlay.Companies
	}
	if overlay.NameBreakLen > 0 {
		out.NameBreakLen = overlay.NameBreakLen
	}
	return out
}

func (s RulesSpec) Compile() (Rules, error) {
	rules := Rules{
		Questions:    s.Questions,
		Addons:       s.Addons,
		NameBreakLen: s.NameBreakLen,
	}

	var err error
	if rules.TicketPattern, err = regexp.Compile(s.TicketPattern); err != nil {
		return Rules{}, fmt.Errorf("ticket_pattern: %w", err)
	}
	if rules.WorkshopCategoryPattern, err = regexp.Compile(s.WorkshopCategoryPattern); err != nil {
		return Rules{}, fmt.Errorf("workshop_category_pattern: %w", err)
	}

	for _, raw := range s.StripFromNames {
		rx, err := regexp.Compile(raw)
		if err != nil {
			return Rules{}, fmt.Errorf("strip_from_names %q: %w", raw, err)
		}
		rules.StripFromNames = append(rules.StripFromNames, rx)
	}

	for _, c := range s.Companies {
		pattern := c.Pattern
		if c.Literal {
			pattern = regexp.QuoteMeta(pattern)
		}
		if c.IgnoreCase {
			pattern = "(?i)" + pattern
		}
		rx, err := regexp.Compile(pattern)
		if err != nil {
			return Rules{}, fmt.Errorf("company rule %q: %w", c.Canonical, err)
		}
		rules.Companies = append(rules.Companies, CompanyRule{Canonical: c.Canonical, Pattern: rx})
	}

	questionFields := make([]string, 0, len(s.Questions))
	for _, q := range s.Questions {
		questionFields = append(questionFields, q.Field)
	}
	addonFields := make([]string, 0, len(s.Addons))
	for _, a := range s.Addons {
		addonFields = append(addonFields, a.Field)
	}
	if rules.Schema, err = internal.NewBadgeSchema(questionFields, addonFields); err != nil {
		return Rules{}, err
	}

	return rules, nil
}
