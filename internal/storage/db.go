package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"badges/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  docType TEXT NOT NULL,
  path TEXT NOT NULL,
  records INTEGER NOT NULL,
  fetchedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_snapshots_docType ON snapshots(docType);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  outputPath TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS badges (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  badgeId TEXT NOT NULL,
  orderCode TEXT NOT NULL,
  positionId INTEGER NOT NULL,
  familyName TEXT,
  givenName TEXT,
  company TEXT,
  needsCheck INTEGER NOT NULL DEFAULT 0,
  rowJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(runId, badgeId),
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_badges_runId ON badges(runId);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertSnapshot(docType, path string, records int) error {
	_, err := d.conn.Exec(
		`INSERT INTO snapshots (docType, path, records) VALUES (?, ?, ?)`,
		docType, path, records,
	)
	return err
}

func (d *DB) ListSnapshots(docType string) ([]internal.SnapshotRow, error) {
	rows, err := d.conn.Query(
		`SELECT id, docType, path, records, fetchedAt FROM snapshots WHERE docType = ? ORDER BY id DESC`,
		docType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.SnapshotRow{}
	for rows.Next() {
		var row internal.SnapshotRow
		if err := rows.Scan(&row.ID, &row.DocType, &row.Path, &row.Records, &row.FetchedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) InsertRun(traceID, outputPath string, timings map[string]float64, counts map[string]int) (int64, error) {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	res, err := d.conn.Exec(
		`INSERT INTO runs (traceId, outputPath, timingsJson, countsJson) VALUES (?, ?, ?, ?)`,
		traceID, outputPath, string(timingsJSON), string(countsJSON),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (d *DB) InsertBadge(runID int64, record *internal.BadgeRecord) error {
	rowJSON, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(
		`INSERT INTO badges (runId, badgeId, orderCode, positionId, familyName, givenName, company, needsCheck, rowJson)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, record.ID(), record.OrderCode, record.PositionID,
		record.FamilyName, record.GivenName, record.Company,
		boolToInt(record.NeedsCheck), string(rowJSON),
	)
	return err
}

func (d *DB) ListBadges(runID int64) ([]internal.BadgeRow, error) {
	rows, err := d.conn.Query(
		`SELECT id, runId, badgeId, orderCode, positionId, familyName, givenName, company, needsCheck, rowJson
		 FROM badges WHERE runId = ? ORDER BY familyName, id`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.BadgeRow{}
	for rows.Next() {
		var row internal.BadgeRow
		var needsCheck int
		if err := rows.Scan(&row.ID, &row.RunID, &row.BadgeID, &row.OrderCode, &row.PositionID,
			&row.FamilyName, &row.GivenName, &row.Company, &needsCheck, &row.RowJSON); err != nil {
			return nil, err
		}
		row.NeedsCheck = needsCheck != 0
		out = append(out, row)
	}
	return out, rows.Err()
}

// LatestRunID returns 0 when no run exists yet.
func (d *DB) LatestRunID() (int64, error) {
	var id sql.NullInt64
	if err := d.conn.QueryRow(`SELECT MAX(id) FROM runs`).Scan(&id); err != nil {
		return 0, err
	}
	if !id.Valid {
		return 0, nil
	}
	return id.Int64, nil
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(
		`INSERT INTO metadata (key, value, updatedAt) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP`,
		key, value,
	)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
