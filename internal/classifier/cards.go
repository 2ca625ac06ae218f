package classifier

import (
	"strings"

	"github.com/liguoqinjim/china-bean-importers/internal/models"
)

// ResolveCardAccount maps a card number to a fully qualified account
// path "prefix:bank:number". Groups and banks are scanned in declaration
// order. An exact match against a bank's registered numbers wins; when a
// bank registers exactly one number and the queried number merely ends
// with it, the registered tail is returned instead. Statements print
// either full card numbers or just a last-four tail, and the
// configuration may register either form.
//
// Returns "" when no bank matches.
func ResolveCardAccount(groups []models.CardAccountGroup, number string) string {
	for _, g := range groups {
		for _, b := range g.Banks {
			for _, n := range b.Numbers {
				if n == number {
					return g.Prefix + ":" + b.Name + ":" + number
				}
			}
			if len(b.Numbers) == 1 && strings.HasSuffix(number, b.Numbers[0]) {
				return g.Prefix + ":" + b.Name + ":" + b.Numbers[0]
			}
		}
	}
	return ""
}
