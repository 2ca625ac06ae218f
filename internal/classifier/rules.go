// Package classifier resolves a statement row's counterparty to a ledger
// account. It evaluates the configured keyword rules against the row's
// narration and payee text, resolves card numbers to account paths, and
// splits payee strings that embed an account number.
package classifier

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/liguoqinjim/china-bean-importers/internal/models"
)

// Conflict records two rules proposing unrelated destination accounts
// for the same row. It is diagnostic only; the first-chosen account is
// kept.
type Conflict struct {
	Kept         string `json:"kept"`
	Rejected     string `json:"rejected"`
	KeptRule     int    `json:"keptRule"`
	RejectedRule int    `json:"rejectedRule"`
	Narration    string `json:"narration"`
	Payee        string `json:"payee"`
}

// Matcher evaluates an ordered rule list. It is read-only after
// construction and safe to reuse across rows.
type Matcher struct {
	rules []models.ClassificationRule
	log   zerolog.Logger
}

// NewMatcher builds a Matcher over the configured rule list. Rule order
// is the declaration order and decides which account wins a merge.
func NewMatcher(rules []models.ClassificationRule, log zerolog.Logger) *Matcher {
	return &Matcher{rules: rules, log: log}
}

// Match runs every rule against the narration and payee text and merges
// the outcomes in rule order. A later rule's account replaces an earlier
// one only when it is a descendant path of it (same prefix, deeper or
// equal); two accounts where neither contains the other are a Conflict,
// and the earlier account is kept. Metadata and tags from every matching
// rule are merged regardless of which rule won the account.
func (m *Matcher) Match(narration, payee string) (models.MatchResult, []Conflict) {
	merged := models.MatchResult{
		Metadata: make(map[string]string),
		Tags:     make(map[string]struct{}),
	}
	var conflicts []Conflict
	winner := -1

	for i := range m.rules {
		res := matchRule(&m.rules[i], narration, payee)

		if merged.Account == "" {
			if res.Account != "" {
				merged.Account = res.Account
				winner = i
			}
		} else if res.Account != "" {
			if strings.HasPrefix(res.Account, merged.Account) {
				// Deeper or equal path refines the earlier choice.
				merged.Account = res.Account
				winner = i
			} else if !strings.HasPrefix(merged.Account, res.Account) {
				c := Conflict{
					Kept:         merged.Account,
					Rejected:     res.Account,
					KeptRule:     winner,
					RejectedRule: i,
					Narration:    narration,
					Payee:        payee,
				}
				conflicts = append(conflicts, c)
				m.log.Warn().
					Str("kept", c.Kept).
					Str("rejected", c.Rejected).
					Int("kept_rule", c.KeptRule).
					Int("rejected_rule", c.RejectedRule).
					Str("narration", narration).
					Str("payee", payee).
					Msg("conflicting destination accounts")
			}
		}

		for k, v := range res.Metadata {
			merged.Metadata[k] = v
		}
		for tag := range res.Tags {
			merged.Tags[tag] = struct{}{}
		}
	}

	return merged, conflicts
}

// matchRule evaluates a single rule. Conjunctive rules either match both
// keywords or fail outright; they never fall through to the disjunctive
// path.
func matchRule(r *models.ClassificationRule, narration, payee string) models.MatchResult {
	if r.Conjunctive() {
		if strings.Contains(narration, r.NarrationKeywords[0]) &&
			strings.Contains(payee, r.PayeeKeywords[0]) {
			return r.Canonicalize()
		}
		return models.MatchResult{}
	}

	for _, kw := range r.NarrationKeywords {
		if strings.Contains(narration, kw) {
			return r.Canonicalize()
		}
	}

	payeeKeywords := r.PayeeKeywords
	if r.PayeeSameAsNarration && len(payeeKeywords) == 0 {
		payeeKeywords = r.NarrationKeywords
	}
	for _, kw := range payeeKeywords {
		if strings.Contains(payee, kw) {
			return r.Canonicalize()
		}
	}

	return models.MatchResult{}
}
