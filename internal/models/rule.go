package models

import "fmt"

// ClassificationRule maps keyword matches in a row's narration or payee
// text to a destination account plus extra metadata and tags. Rules are
// declared in configuration and evaluated in declaration order.
//
// A rule carrying exactly one narration keyword and exactly one payee
// keyword is conjunctive: both must match. Every other rule is
// disjunctive: narration keywords are tried first, each sufficient on
// its own, then payee keywords.
type ClassificationRule struct {
	NarrationKeywords []string `yaml:"narration_keywords"`
	PayeeKeywords     []string `yaml:"payee_keywords"`
	// PayeeSameAsNarration reuses NarrationKeywords against the payee
	// text when no dedicated payee keywords are declared.
	PayeeSameAsNarration bool           `yaml:"payee_same_as_narration"`
	DestinationAccount   string         `yaml:"destination_account"`
	AdditionalTags       []string       `yaml:"additional_tags"`
	AdditionalMetadata   map[string]any `yaml:"additional_metadata"`
}

// Conjunctive reports whether the rule uses AND semantics.
func (r *ClassificationRule) Conjunctive() bool {
	return len(r.NarrationKeywords) == 1 && len(r.PayeeKeywords) == 1
}

// Canonicalize copies the rule's declared outcome into a fresh
// MatchResult so callers can merge it without touching the rule.
func (r *ClassificationRule) Canonicalize() MatchResult {
	res := MatchResult{
		Account:  r.DestinationAccount,
		Metadata: make(map[string]string, len(r.AdditionalMetadata)),
		Tags:     make(map[string]struct{}, len(r.AdditionalTags)),
	}
	for k, v := range r.AdditionalMetadata {
		res.Metadata[k] = fmt.Sprint(v)
	}
	for _, tag := range r.AdditionalTags {
		res.Tags[tag] = struct{}{}
	}
	return res
}

// MatchResult is the outcome of matching one rule, or of merging every
// rule's outcome for a row. An empty Account means no destination was
// resolved.
type MatchResult struct {
	Account  string
	Metadata map[string]string
	Tags     map[string]struct{}
}

// Empty reports whether the result carries no account, metadata or tags.
func (m MatchResult) Empty() bool {
	return m.Account == "" && len(m.Metadata) == 0 && len(m.Tags) == 0
}

// CardAccountGroup maps one ledger account prefix to the bank entries
// registered under it. Groups and banks are evaluated in declaration
// order, so they are slices rather than maps.
type CardAccountGroup struct {
	Prefix string     `yaml:"prefix"`
	Banks  []CardBank `yaml:"banks"`
}

// CardBank is one bank label with its known card numbers. Numbers may be
// full card numbers or short tails such as the last four digits.
type CardBank struct {
	Name    string   `yaml:"name"`
	Numbers []string `yaml:"numbers"`
}
