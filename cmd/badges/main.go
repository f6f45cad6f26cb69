package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"badges/internal/catalog"
	"badges/internal/config"
	"badges/internal/pipeline"
	"badges/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "fetch":
		svc := catalog.NewSyncService(db, cfg, log)
		counts, err := svc.FetchAll(context.Background())
		must(err)
		fmt.Printf("fetch complete event=%s orders=%d items=%d categories=%d questions=%d\n",
			cfg.PretixEvent, counts["orders"], counts["items"], counts["categories"], counts["questions"])

	case "convert":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		data := fs.String("data", cfg.EventDataDir(), "directory with the event's json documents")
		out := fs.String("out", cfg.OutputCSV, "output csv path")
		limit := fs.Int("limit", cfg.CSVLimit, "row cap, <=0 is unlimited")
		orders := fs.String("orders", "", "comma separated order codes to restrict to")
		pseudo := fs.Bool("pseudodata", cfg.Pseudodata, "replace attendee data with sample values")
		_ = fs.Parse(os.Args[2:])

		cfg.CSVLimit = *limit
		cfg.Pseudodata = *pseudo
		if strings.TrimSpace(*orders) != "" {
			cfg.OrderCodes = splitCodes(*orders)
		}

		rules, err := config.LoadRules(cfg.RulesPath)
		must(err)
		svc := pipeline.NewConvertService(db, cfg, rules, log)
		res, err := svc.Run(*data, *out)
		must(err)
		fmt.Printf("converted %d attendees (%d rows, %d flagged) -> %s\n", res.Records, res.Rows, res.Flagged, *out)

	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		runID := fs.Int64("runId", 0, "conversion run id, 0 = latest")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}

		id := *runID
		if id == 0 {
			id, err = db.LatestRunID()
			must(err)
			if id == 0 {
				must(fmt.Errorf("no conversion runs recorded yet"))
			}
		}
		rows, err := db.ListBadges(id)
		must(err)
		if len(rows) == 0 {
			must(fmt.Errorf("no badge rows for runId=%d", id))
		}

		rules, err := config.LoadRules(cfg.RulesPath)
		must(err)
		must(pipeline.ExportReviewXLSX(rows, pipeline.NewNormalizer(rules), *out))
		fmt.Printf("exported %d rows to %s\n", len(rows), *out)

	default:
		usage()
		os.Exit(1)
	}
}

func splitCodes(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func usage() {
	fmt.Println("usage: badges <command>")
	fmt.Println("commands:")
	fmt.Println("  fetch")
	fmt.Println("  convert [--data=./data/2025] [--out=./csv/badges.csv] [--limit=-1] [--orders=ABC12,DEF34] [--pseudodata]")
	fmt.Println("  export:xlsx [--runId=1] --out=./out/review.xlsx")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
