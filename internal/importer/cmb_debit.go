package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/liguoqinjim/china-bean-importers/internal/classifier"
	"github.com/liguoqinjim/china-bean-importers/internal/config"
	"github.com/liguoqinjim/china-bean-importers/internal/currency"
	"github.com/liguoqinjim/china-bean-importers/internal/models"
)

// CMBDebitImporter handles CMB (招商银行) debit card statement rows.
//
// A tokenized row carries these fields:
//
//	0: 记账日期 (posting date)
//	1: 币别 (currency name)
//	2: 金额 (signed amount)
//	3: 余额 (balance after posting)
//	4: 交易摘要 (bank summary)
//	5: 对手信息 (counterparty, may embed an account number)
//	6: 客户摘要 (customer summary, optional)
//
// Five-field rows are rows with an empty counterparty column; the field
// is padded back in.
type CMBDebitImporter struct {
	cfg     *config.Config
	matcher *classifier.Matcher
	log     zerolog.Logger
}

// NewCMBDebitImporter builds the importer over an already-loaded
// configuration.
func NewCMBDebitImporter(cfg *config.Config, log zerolog.Logger) *CMBDebitImporter {
	return &CMBDebitImporter{
		cfg:     cfg,
		matcher: classifier.NewMatcher(cfg.DetailMappings, log),
		log:     log,
	}
}

func (p *CMBDebitImporter) Kind() models.StatementKind {
	return models.KindCMBDebit
}

func (p *CMBDebitImporter) BankName() string {
	return "CMB Debit Card"
}

// Open resolves the statement's own card number to its ledger account
// and starts a session. An unresolvable card number aborts the whole
// statement before any row is processed.
func (p *CMBDebitImporter) Open(owner, cardNumber string) (*Statement, error) {
	account := classifier.ResolveCardAccount(p.cfg.CardAccounts, cardNumber)
	if account == "" {
		return nil, &UnknownCardError{Number: cardNumber}
	}
	return &Statement{
		imp:         p,
		owner:       owner,
		cardAccount: account,
	}, nil
}

// Statement is one statement session: the owner identity plus the
// resolved source account, shared by every row of the statement.
type Statement struct {
	imp         *CMBDebitImporter
	owner       string
	cardAccount string
}

// CardAccount returns the ledger account the statement's rows post from.
func (s *Statement) CardAccount() string {
	return s.cardAccount
}

// transactionFlag marks synthesized transactions as cleared.
const transactionFlag = "*"

// Synthesize builds the balanced two-posting transaction for one row.
//
// A *RowShapeError is returned for field counts outside {5, 6, 7}. An
// *UnresolvedCurrencyError is returned together with the synthesized
// transaction (currency left empty); every other error returns a nil
// transaction.
func (s *Statement) Synthesize(row models.Row) (*models.Transaction, error) {
	fields := row.Fields
	if len(fields) < 5 || len(fields) > 7 {
		return nil, &RowShapeError{Line: row.Line, Fields: fields}
	}
	if len(fields) == 5 {
		fields = append(fields[:5:5], "")
	}

	// The customer summary is the better narration when present.
	narration := fields[4]
	if len(fields) == 7 {
		narration = fields[6]
	}

	date, err := parseDate(fields[0])
	if err != nil {
		return nil, fmt.Errorf("cannot parse date on line %d: %w", row.Line, err)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
	if err != nil {
		return nil, fmt.Errorf("cannot parse amount %q on line %d: %w", fields[2], row.Line, err)
	}
	balance, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return nil, fmt.Errorf("cannot parse balance %q on line %d: %w", fields[3], row.Line, err)
	}
	code, codeKnown := currency.Code(fields[1])

	payee, payeeAccount := classifier.SplitPayee(fields[5])

	metadata := map[string]string{
		"balance":      strings.TrimSpace(balance.StringFixed(2) + " " + code),
		"input_source": string(models.KindCMBDebit),
	}
	if payeeAccount != "" {
		metadata["payee_account"] = payeeAccount
	}

	match, _ := s.imp.matcher.Match(narration, payee)
	for k, v := range match.Metadata {
		metadata[k] = v
	}

	destination := match.Account
	if destination == "" {
		// Unclassified rows always land on the expense placeholder,
		// income included.
		destination = s.imp.cfg.UnknownAccount(true)
	}

	// Transfers between the owner's own cards post to the owner's other
	// account, whatever the keyword rules said.
	if payee != "" && payeeAccount != "" && strings.HasPrefix(s.owner, payee) {
		if account := classifier.ResolveCardAccount(s.imp.cfg.CardAccounts, payeeAccount); account != "" {
			destination = account
		}
	}

	tags := make([]string, 0, len(match.Tags))
	for tag := range match.Tags {
		tags = append(tags, tag)
	}

	txn := &models.Transaction{
		Date:      date,
		Flag:      transactionFlag,
		Payee:     payee,
		Narration: narration,
		Metadata:  metadata,
		Tags:      tags,
		Postings: []models.Posting{
			{Account: s.cardAccount, Amount: &amount, Currency: code},
			{Account: destination},
		},
	}
	txn.SortTags()

	if !codeKnown {
		return txn, &UnresolvedCurrencyError{Name: fields[1], Line: row.Line}
	}
	return txn, nil
}

// Convert synthesizes every row in input order. Structural errors abort
// the run; unresolved currencies degrade to warnings and keep the
// transaction. Blacklisted expense rows are skipped, blacklisted income
// rows kept.
func (s *Statement) Convert(rows []models.Row) ([]models.Transaction, []string, error) {
	var txns []models.Transaction
	var warnings []string

	for _, row := range rows {
		txn, err := s.Synthesize(row)
		if err != nil {
			var unresolved *UnresolvedCurrencyError
			if !errors.As(err, &unresolved) {
				return nil, warnings, err
			}
			warnings = append(warnings, unresolved.Error())
			s.imp.log.Warn().Int("line", row.Line).Str("currency", unresolved.Name).
				Msg("unrecognized currency name")
		}

		if s.imp.cfg.InBlacklist(txn.Narration) && txn.Postings[0].Amount.IsNegative() {
			s.imp.log.Debug().Int("line", row.Line).Str("narration", txn.Narration).
				Msg("expense row skipped by narration blacklist")
			continue
		}

		txns = append(txns, *txn)
	}
	return txns, warnings, nil
}

// dateLayouts are the date formats seen across CMB statement exports.
var dateLayouts = []string{"2006-01-02", "2006/01/02", "20060102"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
