package pipeline

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"badges/internal"
)

func testRecord(orderCode string, positionID int, given, family string) *internal.BadgeRecord {
	return &internal.BadgeRecord{
		OrderCode:  orderCode,
		PositionID: positionID,
		GivenName:  given,
		FamilyName: family,
		Company:    "ACME AG",
		Mail:       "mail@example.org",
		Ticket:     "Konferenzticket regulär",
		Fields:     map[string]string{},
	}
}

func writeCSV(t *testing.T, records []*internal.BadgeRecord, limit int) [][]string {
	t.Helper()
	rules := testRules(t)
	set := NewBadgeSet()
	for _, r := range records {
		if err := set.Add(r); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if _, err := WriteBadgeCSV(set, rules.Schema, NewNormalizer(rules), limit, &buf); err != nil {
		t.Fatal(err)
	}

	reader := csv.NewReader(&buf)
	reader.Comma = ';'
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestWriteBadgeCSVRoundTrip(t *testing.T) {
	records := []*internal.BadgeRecord{
		testRecord("AAAAA", 1, "Max", "Zander"),
		testRecord("BBBBB", 1, "Erika", "Ahrens"),
	}
	records[0].Workshops = []string{"Workshop A", "Workshop B"}
	records[0].Fields["tshirt"] = "Größe M"

	rows := writeCSV(t, records, -1)
	if len(rows) != 3 {
		t.Fatalf("rows=%d", len(rows))
	}

	header := rows[0]
	rules := testRules(t)
	if len(header) != len(rules.Schema.Columns()) {
		t.Fatalf("header len=%d", len(header))
	}
	if header[0] != "order" || header[len(header)-1] != "needs_check" {
		t.Fatalf("header=%v", header)
	}

	// sorted by family name
	if rows[1][0] != "BBBBB" || rows[2][0] != "AAAAA" {
		t.Fatalf("sort order wrong: %v %v", rows[1][0], rows[2][0])
	}

	col := map[string]int{}
	for i, h := range header {
		col[h] = i
	}
	zander := rows[2]
	if zander[col["given_name"]] != "Max" || zander[col["family_name"]] != "Zander" {
		t.Fatalf("row=%v", zander)
	}
	if zander[col["tshirt"]] != "Größe M" {
		t.Fatalf("tshirt=%q", zander[col["tshirt"]])
	}
	workshops := zander[col["workshops"]]
	if !strings.HasPrefix(workshops, "2 ") || !strings.Contains(workshops, `\item Workshop A`) {
		t.Fatalf("workshops=%q", workshops)
	}
	if rows[1][col["workshops"]] != "0" {
		t.Fatalf("empty workshops=%q", rows[1][col["workshops"]])
	}
}

func TestWriteBadgeCSVStableSortTies(t *testing.T) {
	records := []*internal.BadgeRecord{
		testRecord("AAAAA", 1, "Max", "Muster"),
		testRecord("BBBBB", 1, "Erika", "Muster"),
	}
	rows := writeCSV(t, records, -1)
	if rows[1][0] != "AAAAA" || rows[2][0] != "BBBBB" {
		t.Fatalf("ties must keep insertion order: %v %v", rows[1][0], rows[2][0])
	}
}

func TestWriteBadgeCSVLimit(t *testing.T) {
	records := []*internal.BadgeRecord{
		testRecord("AAAAA", 1, "Max", "Ahrens"),
		testRecord("BBBBB", 1, "Erika", "Berg"),
		testRecord("CCCCC", 1, "Jonas", "Claus"),
	}
	rows := writeCSV(t, records, 2)
	if len(rows) != 3 { // header + 2
		t.Fatalf("rows=%d", len(rows))
	}
}

func TestWriteBadgeCSVFlagsUnresolvedName(t *testing.T) {
	record := testRecord("AAAAA", 1, "Max", "Mustermann, Max")
	rows := writeCSV(t, []*internal.BadgeRecord{record}, -1)

	header := rows[0]
	last := len(header) - 1
	if rows[1][last] != "true" {
		t.Fatalf("needs_check=%q", rows[1][last])
	}
	if !record.NeedsCheck {
		t.Fatal("record flag must be raised")
	}
}

func TestWriteBadgeCSVEscapesFields(t *testing.T) {
	record := testRecord("AAAAA", 1, "Max", "Müller_Meier")
	rows := writeCSV(t, []*internal.BadgeRecord{record}, -1)
	if rows[1][3] != `Müller\_Meier` {
		t.Fatalf("family=%q", rows[1][3])
	}
}

func TestWriteBadgeCSVEmptySetFails(t *testing.T) {
	rules := testRules(t)
	var buf bytes.Buffer
	if _, err := WriteBadgeCSV(NewBadgeSet(), rules.Schema, NewNormalizer(rules), -1, &buf); err == nil {
		t.Fatal("empty set must fail")
	}
}
