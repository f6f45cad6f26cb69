package pipeline

import (
	"fmt"
	"strings"

	"badges/internal"
)

var (
	pseudoGivenNames  = []string{"Max", "Maria", "Alex", "Erika", "Jonas", "Lena"}
	pseudoFamilyNames = []string{"Musterfrau", "Mustermann", "Beispiel"}
)

// Pseudonymize replaces all person data in the set with deterministic sample
// values while keeping structure (ids, workshop lists, add-on fields) intact,
// so a layout test CSV carries no real attendee data.
func Pseudonymize(set *BadgeSet, schema internal.BadgeSchema) {
	for i, record := range set.Records() {
		given := pseudoGivenNames[i%len(pseudoGivenNames)]
		family := pseudoFamilyNames[i%len(pseudoFamilyNames)]

		record.GivenName = given
		record.FamilyName = family
		record.Mail = fmt.Sprintf("%s.%s@example.org", strings.ToLower(given), strings.ToLower(family))
		record.Company = "Muster GmbH"

		for _, field := range schema.QuestionFields {
			if record.Fields[field] != "" {
				record.Fields[field] = "Muster"
			}
		}
	}
}
