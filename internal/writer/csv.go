// Package writer exports synthesized transactions as CSV for review in
// spreadsheet tools. Beancount-format ledger output is handled by the
// consuming ledger tooling, not here.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/liguoqinjim/china-bean-importers/internal/models"
)

// CSVWriter writes transactions to CSV, one row per posting.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path, cardAccount string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, cardAccount, txns)
}

// Write writes transactions in CSV format to the given writer. Each
// transaction produces two rows, one per posting; the inferred posting
// leaves amount and currency empty.
func (w *CSVWriter) Write(out io.Writer, cardAccount string, txns []models.Transaction) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		if cardAccount != "" {
			writer.Write([]string{"# Card Account", cardAccount})
		}
		writer.Write([]string{"# Transactions", fmt.Sprintf("%d", len(txns))})
	}

	header := []string{"Date", "Flag", "Payee", "Narration", "Account", "Amount", "Currency", "Tags", "Balance"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txns {
		for i, posting := range txn.Postings {
			row := []string{
				txn.Date.Format(time.DateOnly),
				txn.Flag,
				txn.Payee,
				txn.Narration,
				posting.Account,
				"",
				posting.Currency,
				strings.Join(txn.Tags, " "),
				"",
			}
			if posting.Amount != nil {
				row[5] = posting.Amount.StringFixed(2)
			}
			if i == 0 {
				row[8] = txn.Metadata["balance"]
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	return nil
}
