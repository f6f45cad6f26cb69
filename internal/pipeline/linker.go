package pipeline

import (
	"fmt"

	"badges/internal"
	"badges/internal/catalog"
	"badges/internal/util"
)

// BadgeSet keeps the records in insertion order (the writer's sort is stable,
// ties keep this order) and enforces id uniqueness.
type BadgeSet struct {
	records []*internal.BadgeRecord
	byID    map[string]*internal.BadgeRecord
}

func NewBadgeSet() *BadgeSet {
	return &BadgeSet{byID: map[string]*internal.BadgeRecord{}}
}

func (s *BadgeSet) Add(record *internal.BadgeRecord) error {
	id := record.ID()
	if prev, ok := s.byID[id]; ok {
		return fmt.Errorf("duplicate badge id %s (orders %s and %s)", id, prev.OrderCode, record.OrderCode)
	}
	s.byID[id] = record
	s.records = append(s.records, record)
	return nil
}

func (s *BadgeSet) ByID(id string) (*internal.BadgeRecord, bool) {
	r, ok := s.byID[id]
	return r, ok
}

func (s *BadgeSet) Records() []*internal.BadgeRecord {
	return s.records
}

func (s *BadgeSet) Len() int {
	return len(s.records)
}

// Linker walks each order's positions and builds one badge record per
// ticket-class position, attaching add-on positions to their parent record.
type Linker struct {
	idx       *catalog.Index
	questions catalog.QuestionIndex
	schema    internal.BadgeSchema

	// invoice company per order code, used when a ticket position carries
	// no company of its own
	companyByOrder map[string]string

	// optional allow-list of order codes; nil processes everything
	orderCodes map[string]struct{}
}

func NewLinker(idx *catalog.Index, questions catalog.QuestionIndex, schema internal.BadgeSchema, companyByOrder map[string]string, orderCodes []string) *Linker {
	l := &Linker{idx: idx, questions: questions, schema: schema, companyByOrder: companyByOrder}
	if len(orderCodes) > 0 {
		l.orderCodes = map[string]struct{}{}
		for _, code := range orderCodes {
			l.orderCodes[code] = struct{}{}
		}
	}
	return l
}

func (l *Linker) Link(orders []internal.Order) (*BadgeSet, error) {
	set := NewBadgeSet()
	for _, order := range orders {
		if l.orderCodes != nil {
			if _, ok := l.orderCodes[order.Code]; !ok {
				continue
			}
		}
		if err := l.linkOrder(order, set); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// linkOrder relies on the export's position ordering: a ticket position
// precedes the add-ons that reference it. An add-on whose parent has not been
// seen violates that precondition and aborts the run.
func (l *Linker) linkOrder(order internal.Order, set *BadgeSet) error {
	byPosition := map[int]*internal.BadgeRecord{}
	tickets := make([]internal.Position, 0, len(order.Positions))

	for _, pos := range order.Positions {
		switch {
		case l.idx.IsTicket(pos.Item):
			record, err := l.newRecord(order.Code, pos)
			if err != nil {
				return err
			}
			byPosition[pos.ID] = record
			tickets = append(tickets, pos)
			if err := set.Add(record); err != nil {
				return err
			}

		case pos.AddonTo != nil:
			parent, ok := byPosition[*pos.AddonTo]
			if !ok {
				return fmt.Errorf("order %s position %d: add-on references unknown parent position %d (ticket position must precede its add-ons)",
					order.Code, pos.PositionID, *pos.AddonTo)
			}
			l.attachAddon(parent, pos)

		default:
			// neither ticket nor add-on: inert
		}
	}

	for _, pos := range tickets {
		l.applyAnswers(byPosition[pos.ID], pos)
	}
	return nil
}

func (l *Linker) newRecord(orderCode string, pos internal.Position) (*internal.BadgeRecord, error) {
	if pos.NameParts.Scheme != internal.NameSchemeGivenFamily {
		return nil, fmt.Errorf("order %s position %d: unsupported name scheme %q",
			orderCode, pos.PositionID, pos.NameParts.Scheme)
	}

	record := &internal.BadgeRecord{
		OrderCode:  orderCode,
		PositionID: pos.PositionID,
		GivenName:  pos.NameParts.GivenName,
		FamilyName: pos.NameParts.FamilyName,
		Company:    util.FirstNonEmpty(pos.Company, l.companyByOrder[orderCode]),
		Mail:       pos.AttendeeEmail,
		Ticket:     l.idx.ProductName(pos.Item),
		Fields:     map[string]string{},
	}
	return record, nil
}

// attachAddon resolves the value to attach: the variation display value for a
// variation-tagged position, the product name otherwise. Workshops collect
// into the ordered list; mapped add-on products set their field (last write
// wins); anything else is inert.
func (l *Linker) attachAddon(record *internal.BadgeRecord, pos internal.Position) {
	value := l.idx.ProductName(pos.Item)
	if pos.Variation != nil {
		if v, ok := l.idx.VariationValue(pos.Item, *pos.Variation); ok {
			value = v
		}
	}

	if l.idx.IsWorkshop(pos.Item) {
		record.Workshops = append(record.Workshops, value)
		return
	}
	if field, ok := l.idx.AddonFieldByName[l.idx.ProductName(pos.Item)]; ok {
		record.Fields[field] = value
	}
}

func (l *Linker) applyAnswers(record *internal.BadgeRecord, pos internal.Position) {
	for _, answer := range pos.Answers {
		if field, ok := l.questions.FieldByCode[answer.QuestionIdentifier]; ok {
			record.Fields[field] = answer.Answer
		}
	}
}
