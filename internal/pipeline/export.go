package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"badges/internal"
)

type WriteResult struct {
	Rows    int
	Flagged int
}

// WriteBadgeCSV serializes the record set: stable sort by family name, one
// header row, one row per record, semicolon delimited with minimal quoting
// and Unix line endings for the badge template's CSV reader. limit caps the
// row count when positive.
func WriteBadgeCSV(set *BadgeSet, schema internal.BadgeSchema, norm *Normalizer, limit int, w io.Writer) (WriteResult, error) {
	if set.Len() == 0 {
		return WriteResult{}, errors.New("no badge records to write")
	}

	records := append([]*internal.BadgeRecord(nil), set.Records()...)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].FamilyName < records[j].FamilyName
	})

	out := csv.NewWriter(w)
	out.Comma = ';'

	if err := out.Write(schema.Columns()); err != nil {
		return WriteResult{}, err
	}

	result := WriteResult{}
	for _, record := range records {
		if limit > 0 && result.Rows >= limit {
			break
		}
		if err := out.Write(renderRow(record, schema, norm)); err != nil {
			return WriteResult{}, err
		}
		result.Rows++
		if record.NeedsCheck {
			result.Flagged++
		}
	}

	out.Flush()
	return result, out.Error()
}

// renderRow normalizes and escapes every field exactly once. Normalization
// may still raise the record's needs-check flag, so the flag column is
// rendered last.
func renderRow(record *internal.BadgeRecord, schema internal.BadgeSchema, norm *Normalizer) []string {
	given, flagGiven := norm.PersonName(record.GivenName)
	family, flagFamily := norm.PersonName(record.FamilyName)
	company, flagCompany := norm.Company(record.Company)
	if flagGiven || flagFamily || flagCompany {
		record.NeedsCheck = true
	}

	row := []string{
		record.OrderCode,
		strconv.Itoa(record.PositionID),
		TexEscape(given),
		TexEscape(family),
		TexEscape(company),
		TexEscape(record.Mail),
		TexEscape(record.Ticket),
	}
	for _, field := range schema.QuestionFields {
		row = append(row, TexEscape(record.Fields[field]))
	}
	for _, field := range schema.AddonFields {
		row = append(row, TexEscape(record.Fields[field]))
	}
	row = append(row, renderWorkshops(record.Workshops))
	row = append(row, strconv.FormatBool(record.NeedsCheck))
	return row
}

// renderWorkshops emits the count followed by an itemized block the badge
// template prints as a list. An empty list is just "0".
func renderWorkshops(workshops []string) string {
	if len(workshops) == 0 {
		return "0"
	}
	items := make([]string, 0, len(workshops))
	for _, w := range workshops {
		items = append(items, TexEscape(w))
	}
	return fmt.Sprintf(`%d \begin{itemize} \item %s \end{itemize}\leavevmode`,
		len(workshops), strings.Join(items, ` \item `))
}

// ExportReviewXLSX writes the persisted badge rows of one run to a worksheet
// for the operator, with a suggested resolution for flagged names.
func ExportReviewXLSX(rows []internal.BadgeRow, norm *Normalizer, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"badge_id", "order", "posid", "family_name", "given_name", "company",
		"needs_check", "suggested_name",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.BadgeID)
		set(2, row.OrderCode)
		set(3, row.PositionID)
		set(4, row.FamilyName)
		set(5, row.GivenName)
		set(6, row.Company)
		set(7, row.NeedsCheck)
		if row.NeedsCheck {
			set(8, norm.DisplayName(strings.TrimSpace(row.GivenName+" "+row.FamilyName)))
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
