package catalog

import (
	"sort"

	"badges/internal"
	"badges/internal/config"
)

// Index classifies the product catalog for the linker: which products create
// a badge, which are workshop enrollments, and which map onto a simple add-on
// field. Matching runs against one configured locale of the display names.
// Products matching nothing stay inert.
type Index struct {
	ProductsByID     map[int]internal.Product
	TicketItems      map[int]struct{}
	WorkshopItems    map[int]struct{}
	AddonFieldByName map[string]string

	locale string
}

func BuildIndex(products []internal.Product, categories []internal.Category, rules config.Rules, locale string) *Index {
	idx := &Index{
		ProductsByID:     map[int]internal.Product{},
		TicketItems:      map[int]struct{}{},
		WorkshopItems:    map[int]struct{}{},
		AddonFieldByName: map[string]string{},
		locale:           locale,
	}

	workshopCategories := map[int]struct{}{}
	for _, c := range categories {
		if rules.WorkshopCategoryPattern.MatchString(c.Name.Get(locale)) {
			workshopCategories[c.ID] = struct{}{}
		}
	}

	for _, p := range products {
		idx.ProductsByID[p.ID] = p
		if rules.TicketPattern.MatchString(p.Name.Get(locale)) {
			idx.TicketItems[p.ID] = struct{}{}
		}
		if p.Category != nil {
			if _, ok := workshopCategories[*p.Category]; ok {
				idx.WorkshopItems[p.ID] = struct{}{}
			}
		}
	}

	for _, a := range rules.Addons {
		idx.AddonFieldByName[a.Product] = a.Field
	}

	return idx
}

func (i *Index) IsTicket(itemID int) bool {
	_, ok := i.TicketItems[itemID]
	return ok
}

func (i *Index) IsWorkshop(itemID int) bool {
	_, ok := i.WorkshopItems[itemID]
	return ok
}

func (i *Index) ProductName(itemID int) string {
	return i.ProductsByID[itemID].Name.Get(i.locale)
}

// VariationValue resolves the display value of a product variation.
func (i *Index) VariationValue(itemID, variationID int) (string, bool) {
	p, ok := i.ProductsByID[itemID]
	if !ok {
		return "", false
	}
	for _, v := range p.Variations {
		if v.ID == variationID {
			return v.Value.Get(i.locale), true
		}
	}
	return "", false
}

// QuestionIndex resolves a question's stable external code to the badge field
// its answer populates. Codes outside the configured table are dropped.
type QuestionIndex struct {
	FieldByCode map[string]string
}

func BuildQuestionIndex(rules config.Rules) QuestionIndex {
	idx := QuestionIndex{FieldByCode: map[string]string{}}
	for _, q := range rules.Questions {
		idx.FieldByCode[q.Code] = q.Field
	}
	return idx
}

// MissingCodes reports configured codes that do not occur in the event's
// question list. Purely an operator diagnostic.
func (q QuestionIndex) MissingCodes(questions []internal.Question) []string {
	known := map[string]struct{}{}
	for _, question := range questions {
		known[question.Identifier] = struct{}{}
	}
	var out []string
	for code := range q.FieldByCode {
		if _, ok := known[code]; !ok {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}
