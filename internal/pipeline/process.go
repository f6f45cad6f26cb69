package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"badges/internal/catalog"
	"badges/internal/config"
	"badges/internal/storage"
)

// ConvertService runs the whole batch: load the event snapshot, build the
// lookup tables, link orders into badge records, write the CSV and persist
// the run in the bookkeeping database.
type ConvertService struct {
	db    *storage.DB
	cfg   config.Config
	rules config.Rules
	log   zerolog.Logger
}

func NewConvertService(db *storage.DB, cfg config.Config, rules config.Rules, log zerolog.Logger) *ConvertService {
	return &ConvertService{db: db, cfg: cfg, rules: rules, log: log}
}

type ConvertResult struct {
	RunID   int64
	TraceID string
	Records int
	Rows    int
	Flagged int
}

func (s *ConvertService) Run(dataDir, outputPath string) (ConvertResult, error) {
	start := time.Now()

	docs, err := catalog.LoadDocuments(dataDir)
	if err != nil {
		return ConvertResult{}, err
	}

	idx := catalog.BuildIndex(docs.Products, docs.Categories, s.rules, s.cfg.Locale)
	questions := catalog.BuildQuestionIndex(s.rules)
	if missing := questions.MissingCodes(docs.Questions); len(missing) > 0 {
		s.log.Debug().Strs("codes", missing).Msg("configured question codes absent from event")
	}

	linker := NewLinker(idx, questions, s.rules.Schema, docs.CompanyByOrder, s.cfg.OrderCodes)
	set, err := linker.Link(docs.Orders)
	if err != nil {
		return ConvertResult{}, err
	}

	norm := NewNormalizer(s.rules)
	if s.cfg.Pseudodata {
		Pseudonymize(set, s.rules.Schema)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return ConvertResult{}, err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return ConvertResult{}, err
	}
	written, err := WriteBadgeCSV(set, s.rules.Schema, norm, s.cfg.CSVLimit, out)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return ConvertResult{}, err
	}

	result := ConvertResult{
		TraceID: traceID(),
		Records: set.Len(),
		Rows:    written.Rows,
		Flagged: written.Flagged,
	}

	if s.db != nil {
		runID, err := s.db.InsertRun(result.TraceID, outputPath,
			map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())},
			map[string]int{"records": result.Records, "rows": result.Rows, "flagged": result.Flagged})
		if err != nil {
			return ConvertResult{}, err
		}
		result.RunID = runID
		for _, record := range set.Records() {
			if err := s.db.InsertBadge(runID, record); err != nil {
				return ConvertResult{}, err
			}
		}
	}

	s.log.Info().
		Int("records", result.Records).
		Int("rows", result.Rows).
		Int("flagged", result.Flagged).
		Str("output", outputPath).
		Msg("conversion complete")
	return result, nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
