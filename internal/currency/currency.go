// Package currency maps the localized currency names printed on Chinese
// bank statements to ISO 4217 codes.
package currency

// codeTable covers the currency names CMB and the other supported banks
// print in their statement rows. The "CNY" entry handles statements that
// already print the ISO code.
var codeTable = map[string]string{
	"人民币":   "CNY",
	"港币":    "HKD",
	"澳门元":   "MOP",
	"美元":    "USD",
	"日元":    "JPY",
	"韩元":    "KRW",
	"欧元":    "EUR",
	"英镑":    "GBP",
	"加拿大元":  "CAD",
	"澳大利亚元": "AUD",
	"新加坡元":  "SGD",
	"CNY":   "CNY",
}

// Code resolves a localized currency name to its ISO 4217 code. The
// second return is false when the name is not in the table; callers
// decide whether that is fatal.
func Code(name string) (string, bool) {
	code, ok := codeTable[name]
	return code, ok
}
