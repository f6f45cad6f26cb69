package internal

import (
	"fmt"
	"strconv"
)

// LocalizedString is a locale keyed display text as exported by the ticketing
// platform, e.g. {"de": "Konferenzticket", "en": "Conference ticket"}.
type LocalizedString map[string]string

func (l LocalizedString) Get(locale string) string {
	if l == nil {
		return ""
	}
	return l[locale]
}

type Variation struct {
	ID    int             `json:"id"`
	Value LocalizedString `json:"value"`
}

type Product struct {
	ID         int             `json:"id"`
	Name       LocalizedString `json:"name"`
	Category   *int            `json:"category"`
	Variations []Variation     `json:"variations"`
}

type Category struct {
	ID   int             `json:"id"`
	Name LocalizedString `json:"name"`
}

type Question struct {
	ID         int             `json:"id"`
	Identifier string          `json:"identifier"`
	Question   LocalizedString `json:"question"`
}

type Answer struct {
	QuestionIdentifier string `json:"question_identifier"`
	Answer             string `json:"answer"`
}

// NameSchemeGivenFamily is the only attendee name scheme the pipeline
// supports. Any other scheme aborts the run.
const NameSchemeGivenFamily = "given_family"

type NameParts struct {
	Scheme     string `json:"_scheme"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

type Position struct {
	ID            int       `json:"id"`
	PositionID    int       `json:"positionid"`
	Item          int       `json:"item"`
	AddonTo       *int      `json:"addon_to"`
	Variation     *int      `json:"variation"`
	NameParts     NameParts `json:"attendee_name_parts"`
	AttendeeEmail string    `json:"attendee_email"`
	Company       string    `json:"company"`
	Answers       []Answer  `json:"answers"`
}

type Order struct {
	Code      string     `json:"code"`
	Positions []Position `json:"positions"`
}

// BadgeRecord holds everything that ends up in one output row. Exactly one
// record exists per ticket-class position; add-on positions and normalization
// passes mutate it until it is written.
type BadgeRecord struct {
	OrderCode  string            `json:"order"`
	PositionID int               `json:"posid"`
	GivenName  string            `json:"given_name"`
	FamilyName string            `json:"family_name"`
	Company    string            `json:"company"`
	Mail       string            `json:"mail"`
	Ticket     string            `json:"ticket"`
	Fields     map[string]string `json:"fields"`
	Workshops  []string          `json:"workshops"`
	NeedsCheck bool              `json:"needs_check"`
}

// ID is unique across the whole record set; a collision is a fatal integrity
// violation.
func (b *BadgeRecord) ID() string {
	return b.OrderCode + strconv.Itoa(b.PositionID)
}

func (b *BadgeRecord) String() string {
	return fmt.Sprintf("Ticket:#%s,%s,%s", b.OrderCode, b.FamilyName, b.GivenName)
}

var coreColumns = []string{"order", "posid", "given_name", "family_name", "company", "mail", "ticket"}

// BadgeSchema fixes the output columns. The question and add-on fields come
// from configuration; the schema is built once at startup and rejects any
// duplicate field name.
type BadgeSchema struct {
	QuestionFields []string
	AddonFields    []string
}

func NewBadgeSchema(questionFields, addonFields []string) (BadgeSchema, error) {
	seen := map[string]string{}
	for _, core := range coreColumns {
		seen[core] = "core"
	}
	seen["workshops"] = "core"
	seen["needs_check"] = "core"
	check := func(kind string, fields []string) error {
		for _, f := range fields {
			if prev, ok := seen[f]; ok {
				return fmt.Errorf("duplicate badge field %q (%s vs %s)", f, prev, kind)
			}
			seen[f] = kind
		}
		return nil
	}
	if err := check("question", questionFields); err != nil {
		return BadgeSchema{}, err
	}
	if err := check("addon", addonFields); err != nil {
		return BadgeSchema{}, err
	}
	return BadgeSchema{QuestionFields: questionFields, AddonFields: addonFields}, nil
}

// Columns returns the full header in declaration order, fixed across all rows.
func (s BadgeSchema) Columns() []string {
	out := make([]string, 0, len(coreColumns)+len(s.QuestionFields)+len(s.AddonFields)+2)
	out = append(out, coreColumns...)
	out = append(out, s.QuestionFields...)
	out = append(out, s.AddonFields...)
	out = append(out, "workshops", "needs_check")
	return out
}

// SnapshotRow registers one fetched source document in the bookkeeping
// database.
type SnapshotRow struct {
	ID        int
	DocType   string
	Path      string
	Records   int
	FetchedAt string
}

// BadgeRow is the persisted form of a written badge record, kept per
// conversion run so the review export can be repeated without re-reading the
// source documents.
type BadgeRow struct {
	ID         int
	RunID      int64
	BadgeID    string
	OrderCode  string
	PositionID int
	FamilyName string
	GivenName  string
	Company    string
	NeedsCheck bool
	RowJSON    string
}
