package classifier

import "regexp"

// payeeAccountPattern splits a payee string into a non-digit display
// name and the account number the statement appends to it.
var payeeAccountPattern = regexp.MustCompile(`^(\D*)(\d+)`)

// cardTailPattern pulls the four-digit tail out of strings like
// "招商银行储蓄卡(1234)".
var cardTailPattern = regexp.MustCompile(`^.*银行.*\(([0-9]{4})\)`)

// SplitPayee separates a payee string into its display name and the
// embedded account number suffix, if any. Without a digit suffix the
// whole string is the display name and the tail is "".
func SplitPayee(payee string) (name, accountTail string) {
	if m := payeeAccountPattern.FindStringSubmatch(payee); m != nil {
		return m[1], m[2]
	}
	return payee, ""
}

// MatchCardTail extracts the card tail from a bank-card label, or ""
// when the text does not carry one.
func MatchCardTail(s string) string {
	if m := cardTailPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
