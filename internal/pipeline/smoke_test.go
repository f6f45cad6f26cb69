package pipeline

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"badges/internal/config"
	"badges/internal/storage"
)

const smokeItems = `[
  {"id": 1, "name": {"de": "Konferenzticket regulär"}, "category": null, "variations": []},
  {"id": 2, "name": {"de": "Workshop A"}, "category": 10, "variations": []},
  {"id": 3, "name": {"de": "Konferenz-T-Shirt"}, "category": 20, "variations": [
    {"id": 100, "value": {"de": "Größe M"}}
  ]}
]`

const smokeCategories = `[
  {"id": 10, "name": {"de": "Workshops"}},
  {"id": 20, "name": {"de": "Merchandise"}}
]`

const smokeQuestions = `[
  {"id": 7, "identifier": "MBWBQDPJ", "question": {"de": "Firmenname"}}
]`

const smokeOrders = `[
  {
    "code": "XYMHH",
    "positions": [
      {
        "id": 500, "positionid": 1, "item": 1, "addon_to": null, "variation": null,
        "attendee_name_parts": {"_scheme": "given_family", "given_name": "Max", "family_name": "Musterfrau"},
        "attendee_email": "max@example.org", "company": "ACME GmbH",
        "answers": [{"question_identifier": "MBWBQDPJ", "answer": "ACME GmbH"}]
      },
      {
        "id": 501, "positionid": 2, "item": 2, "addon_to": 500, "variation": null,
        "attendee_name_parts": {"_scheme": "given_family", "given_name": "", "family_name": ""},
        "attendee_email": "", "company": "", "answers": []
      },
      {
        "id": 502, "positionid": 3, "item": 3, "addon_to": 500, "variation": 100,
        "attendee_name_parts": {"_scheme": "given_family", "given_name": "", "family_name": ""},
        "attendee_email": "", "company": "", "answers": []
      }
    ]
  }
]`

func TestSmokeConvertToCSVAndReviewXLSX(t *testing.T) {
	tmp := t.TempDir()
	dataDir := filepath.Join(tmp, "2025")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	fixtures := map[string]string{
		"items.json":      smokeItems,
		"categories.json": smokeCategories,
		"questions.json":  smokeQuestions,
		"orders.json":     smokeOrders,
	}
	for name, blob := range fixtures {
		if err := os.WriteFile(filepath.Join(dataDir, name), []byte(blob), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	cfg, _ := config.Load()
	cfg.Locale = "de"
	cfg.CSVLimit = -1
	cfg.OrderCodes = nil
	cfg.Pseudodata = false
	rules, err := config.DefaultRulesSpec().Compile()
	if err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(tmp, "badges.csv")
	svc := NewConvertService(db, cfg, rules, zerolog.Nop())
	res, err := svc.Run(dataDir, outPath)
	if err != nil {
		t.Fatal(err)
	}
	if res.Records != 1 || res.Rows != 1 || res.Flagged != 0 {
		t.Fatalf("result=%+v", res)
	}
	if res.RunID == 0 {
		t.Fatal("run not persisted")
	}

	blob, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	reader := csv.NewReader(bytes.NewReader(blob))
	reader.Comma = ';'
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d", len(rows))
	}
	col := map[string]int{}
	for i, h := range rows[0] {
		col[h] = i
	}
	row := rows[1]
	if row[col["order"]] != "XYMHH" || row[col["posid"]] != "1" {
		t.Fatalf("row=%v", row)
	}
	if row[col["tshirt"]] != "Größe M" {
		t.Fatalf("tshirt=%q", row[col["tshirt"]])
	}
	if row[col["workshops"]] == "0" {
		t.Fatal("workshop addon missing")
	}

	badges, err := db.ListBadges(res.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(badges) != 1 || badges[0].BadgeID != "XYMHH1" {
		t.Fatalf("badges=%+v", badges)
	}

	xlsxPath := filepath.Join(tmp, "review.xlsx")
	if err := ExportReviewXLSX(badges, NewNormalizer(rules), xlsxPath); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(xlsxPath); err != nil {
		t.Fatal(err)
	}
}

func TestSmokePseudodataKeepsStructure(t *testing.T) {
	rules, err := config.DefaultRulesSpec().Compile()
	if err != nil {
		t.Fatal(err)
	}

	set := NewBadgeSet()
	record := testRecord("AAAAA", 1, "Max", "Echtname")
	record.Workshops = []string{"Workshop A"}
	record.Fields["firmenname"] = "Geheime Firma"
	if err := set.Add(record); err != nil {
		t.Fatal(err)
	}

	Pseudonymize(set, rules.Schema)

	if record.FamilyName == "Echtname" {
		t.Fatal("family name not replaced")
	}
	if record.Fields["firmenname"] != "Muster" {
		t.Fatalf("firmenname=%q", record.Fields["firmenname"])
	}
	if len(record.Workshops) != 1 {
		t.Fatal("workshop list must survive")
	}
	if record.ID() != "AAAAA1" {
		t.Fatal("id must survive")
	}
}
