// Package importer turns tokenized statement rows into balanced
// double-entry transactions. Each supported statement format gets its
// own importer behind the Importer interface, constructed through New.
package importer

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/liguoqinjim/china-bean-importers/internal/config"
	"github.com/liguoqinjim/china-bean-importers/internal/models"
)

// Importer opens statement sessions for one statement format.
type Importer interface {
	// Open starts a session for one statement. The owner display name
	// and the statement's own card number come from the statement
	// header. Open fails when the card number cannot be resolved to an
	// account: without the source account no row can be posted.
	Open(owner, cardNumber string) (*Statement, error)
	// Kind returns the format identifier, also used as the
	// input_source metadata value.
	Kind() models.StatementKind
	// BankName returns the human-readable bank name.
	BankName() string
}

// New returns the importer for the given statement kind.
func New(kind models.StatementKind, cfg *config.Config, log zerolog.Logger) (Importer, error) {
	switch kind {
	case models.KindCMBDebit:
		return NewCMBDebitImporter(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported statement kind: %q", kind)
	}
}

// Detect identifies the statement format from header text.
func Detect(header string) (models.StatementKind, error) {
	if strings.Contains(header, "招商银行交易流水") {
		return models.KindCMBDebit, nil
	}
	return "", fmt.Errorf("could not detect statement kind from header text")
}
