package classifier

import (
	"testing"

	"github.com/liguoqinjim/china-bean-importers/internal/models"
)

func testCardGroups() []models.CardAccountGroup {
	return []models.CardAccountGroup{
		{
			Prefix: "Assets:Card",
			Banks: []models.CardBank{
				{Name: "CMB", Numbers: []string{"1234"}},
				{Name: "BOC", Numbers: []string{"5678", "9012"}},
			},
		},
		{
			Prefix: "Liabilities:CreditCard",
			Banks: []models.CardBank{
				{Name: "CMB", Numbers: []string{"4321"}},
			},
		},
	}
}

func TestResolveCardAccount(t *testing.T) {
	groups := testCardGroups()

	tests := []struct {
		name     string
		number   string
		expected string
	}{
		{"exact tail match", "1234", "Assets:Card:CMB:1234"},
		{"suffix fallback returns registered tail", "622202341234", "Assets:Card:CMB:1234"},
		{"exact match in multi-number bank", "9012", "Assets:Card:BOC:9012"},
		{"no suffix fallback with two registered numbers", "888888885678", ""},
		{"second group", "4321", "Liabilities:CreditCard:CMB:4321"},
		{"unknown number", "622202349999", ""},
		{"empty number", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCardAccount(groups, tt.number)
			if got != tt.expected {
				t.Errorf("ResolveCardAccount(%q): got %q, want %q", tt.number, got, tt.expected)
			}
		})
	}
}

func TestResolveCardAccountOrder(t *testing.T) {
	// The same tail registered under two groups resolves to the first
	// declared group.
	groups := []models.CardAccountGroup{
		{Prefix: "Assets:Card", Banks: []models.CardBank{{Name: "CMB", Numbers: []string{"1234"}}}},
		{Prefix: "Liabilities:CreditCard", Banks: []models.CardBank{{Name: "CMB", Numbers: []string{"1234"}}}},
	}
	got := ResolveCardAccount(groups, "1234")
	if got != "Assets:Card:CMB:1234" {
		t.Errorf("got %q, want first declared group to win", got)
	}
}

func TestResolveCardAccountEmptyConfig(t *testing.T) {
	if got := ResolveCardAccount(nil, "1234"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
