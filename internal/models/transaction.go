package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Row is a single tokenized statement row as delivered by a row source:
// the ordered text fields of one transaction line plus the line number
// it came from, kept for diagnostics.
type Row struct {
	Fields []string `json:"fields"`
	Line   int      `json:"line"`
}

// Posting is one leg of a double-entry transaction. The amount is left
// nil on the inferred leg; the consuming ledger balances it against the
// known leg.
type Posting struct {
	Account  string           `json:"account"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Currency string           `json:"currency,omitempty"`
}

// Transaction is a balanced two-posting bookkeeping record synthesized
// from one statement row.
type Transaction struct {
	Date      time.Time         `json:"date"`
	Flag      string            `json:"flag"`
	Payee     string            `json:"payee"`
	Narration string            `json:"narration"`
	Metadata  map[string]string `json:"metadata"`
	Tags      []string          `json:"tags"`
	Postings  []Posting         `json:"postings"`
}

// SortTags orders the tag slice so output is deterministic. Tag order
// carries no meaning.
func (t *Transaction) SortTags() {
	sort.Strings(t.Tags)
}

// StatementKind identifies a supported statement format.
type StatementKind string

const (
	KindCMBDebit StatementKind = "cmb_debit_card"
)
