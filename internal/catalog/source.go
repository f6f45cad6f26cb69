package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"badges/internal"
)

// Documents is one event's full source snapshot, read from the JSON files the
// fetch command (or a manual API export) placed in the data directory.
type Documents struct {
	Products   []internal.Product
	Categories []internal.Category
	Questions  []internal.Question
	Orders     []internal.Order

	// CompanyByOrder maps an order code to the invoice company name, when
	// invoice data (nrei.json) is present. Used to fill in badges whose
	// position carries no company.
	CompanyByOrder map[string]string
}

func LoadDocuments(dir string) (Documents, error) {
	docs := Documents{}

	if err := readArray(filepath.Join(dir, "items.json"), &docs.Products); err != nil {
		return Documents{}, err
	}
	if err := readArray(filepath.Join(dir, "categories.json"), &docs.Categories); err != nil {
		return Documents{}, err
	}
	if err := readArray(filepath.Join(dir, "questions.json"), &docs.Questions); err != nil {
		return Documents{}, err
	}
	if err := readArray(filepath.Join(dir, "orders.json"), &docs.Orders); err != nil {
		return Documents{}, err
	}

	companies, err := readCompanyNames(filepath.Join(dir, "nrei.json"))
	if err != nil {
		return Documents{}, err
	}
	docs.CompanyByOrder = companies

	return docs, nil
}

func readArray(path string, out any) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// readCompanyNames parses the invoice export. The file is optional; a missing
// file yields an empty map.
func readCompanyNames(path string) (map[string]string, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	var doc struct {
		Data []struct {
			Hdr struct {
				OID string `json:"OID"`
				CN  string `json:"CN"`
			} `json:"Hdr"`
		} `json:"Data"`
	}
	if err := json.Unmarshal(blob, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := make(map[string]string, len(doc.Data))
	for _, entry := range doc.Data {
		if entry.Hdr.OID != "" && entry.Hdr.CN != "" {
			out[entry.Hdr.OID] = entry.Hdr.CN
		}
	}
	return out, nil
}
