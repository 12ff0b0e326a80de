// Package account holds the commercial account reference data and the
// two-tier brand resolution that maps a free-text brand name to the single
// best-matching account.
package account

import "github.com/sells-group/comercial-bot/internal/normalize"

// Account is one row of the commercial reference table. TradeKey and
// LegalKey are the normalized forms of TradeName and LegalName, computed
// once when the row is loaded and used only for matching, never displayed.
type Account struct {
	ID        string `json:"id,omitempty" yaml:"-"`
	Executive string `json:"ejecutivo" yaml:"ejecutivo"`
	TradeName string `json:"nombre_fantasia" yaml:"nombre_fantasia"`
	LegalName string `json:"razon_social" yaml:"razon_social"`
	TradeKey  string `json:"-" yaml:"-"`
	LegalKey  string `json:"-" yaml:"-"`
}

// ComputeKeys fills the derived matching keys from the display names.
func (a *Account) ComputeKeys() {
	a.TradeKey = normalize.Key(a.TradeName)
	a.LegalKey = normalize.Key(a.LegalName)
}

// Usable reports whether the row can ever be returned as a match: it needs
// a responsible executive and at least one displayable name.
func (a Account) Usable() bool {
	return a.Executive != "" && (a.TradeName != "" || a.LegalName != "")
}

// Match is the per-query resolution result handed to the response layer.
// DetectedBrand is the label surfaced to the user: the trade name when
// present, otherwise the legal name, regardless of which field matched.
type Match struct {
	Executive     string `json:"ejecutivo"`
	TradeName     string `json:"nombre_fantasia"`
	LegalName     string `json:"razon_social"`
	DetectedBrand string `json:"marca_detectada"`
}

func matchFrom(a Account) Match {
	brand := a.TradeName
	if brand == "" {
		brand = a.LegalName
	}
	return Match{
		Executive:     a.Executive,
		TradeName:     a.TradeName,
		LegalName:     a.LegalName,
		DetectedBrand: brand,
	}
}
