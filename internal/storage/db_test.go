package storage

import (
	"path/filepath"
	"testing"

	"badges/internal"
)

func TestRunAndBadgePersistence(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	runID, err := db.InsertRun("trace-1", "/tmp/badges.csv",
		map[string]float64{"totalMs": 12},
		map[string]int{"records": 1})
	if err != nil {
		t.Fatal(err)
	}

	record := &internal.BadgeRecord{
		OrderCode:  "ABCDE",
		PositionID: 1,
		GivenName:  "Max",
		FamilyName: "Musterfrau",
		NeedsCheck: true,
	}
	if err := db.InsertBadge(runID, record); err != nil {
		t.Fatal(err)
	}
	// same badge id again in the same run violates the unique constraint
	if err := db.InsertBadge(runID, record); err == nil {
		t.Fatal("duplicate badge in one run must fail")
	}

	rows, err := db.ListBadges(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].BadgeID != "ABCDE1" || !rows[0].NeedsCheck {
		t.Fatalf("rows=%+v", rows)
	}

	latest, err := db.LatestRunID()
	if err != nil {
		t.Fatal(err)
	}
	if latest != runID {
		t.Fatalf("latest=%d want %d", latest, runID)
	}
}

func TestMetadata(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if v, err := db.GetMetadata("last_sync"); err != nil || v != nil {
		t.Fatalf("unset key: v=%v err=%v", v, err)
	}
	if err := db.SetMetadata("last_sync", "2025-01-01T00:00:00Z"); err != nil {
		t.Fatal(err)
	}
	// setting again overwrites
	if err := db.SetMetadata("last_sync", "2025-02-02T00:00:00Z"); err != nil {
		t.Fatal(err)
	}
	v, err := db.GetMetadata("last_sync")
	if err != nil {
		t.Fatal(err)
	}
	if v == nil || *v != "2025-02-02T00:00:00Z" {
		t.Fatalf("v=%v", v)
	}
}

func TestSnapshots(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := db.InsertSnapshot("orders", "/data/2025/orders.json", 42); err != nil {
		t.Fatal(err)
	}
	rows, err := db.ListSnapshots("orders")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Records != 42 {
		t.Fatalf("rows=%+v", rows)
	}
}
