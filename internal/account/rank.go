package account

import (
	"sort"
	"strings"
)

// Priority tiers for scored ranking, lower wins. Equality on the trade key
// outranks equality on the legal key, prefix matches outrank plain substring
// matches, and within the same rule class the trade field outranks the legal
// field. prioNone is a defensive default for rows that slip past the
// substring candidate filter.
const (
	prioTradeExact    = 0
	prioLegalExact    = 1
	prioTradePrefix   = 2
	prioLegalPrefix   = 3
	prioTradeContains = 4
	prioLegalContains = 5
	prioNone          = 9
)

// priority assigns a row its tier for the given key. First matching rule wins.
func priority(key string, a Account) int {
	switch {
	case a.TradeKey == key:
		return prioTradeExact
	case a.LegalKey == key:
		return prioLegalExact
	case strings.HasPrefix(a.TradeKey, key):
		return prioTradePrefix
	case strings.HasPrefix(a.LegalKey, key):
		return prioLegalPrefix
	case strings.Contains(a.TradeKey, key):
		return prioTradeContains
	case strings.Contains(a.LegalKey, key):
		return prioLegalContains
	default:
		return prioNone
	}
}

// minKeyLen is the secondary sort key: the shorter of the two normalized
// fields, approximating how padded the candidate name is. Shorter wins, so
// "natura" outranks "naturacosmeticosinternacional" within the same tier.
func minKeyLen(a Account) int {
	if len(a.TradeKey) < len(a.LegalKey) {
		return len(a.TradeKey)
	}
	return len(a.LegalKey)
}

// rankBest returns the top candidate by (priority ascending, shortest
// normalized field ascending), keeping input order for full ties. Rows
// without an executive or without any displayable name are skipped.
func rankBest(key string, candidates []Account) (Account, bool) {
	usable := make([]Account, 0, len(candidates))
	for _, a := range candidates {
		if a.Usable() {
			usable = append(usable, a)
		}
	}
	if len(usable) == 0 {
		return Account{}, false
	}

	sort.SliceStable(usable, func(i, j int) bool {
		pi, pj := priority(key, usable[i]), priority(key, usable[j])
		if pi != pj {
			return pi < pj
		}
		return minKeyLen(usable[i]) < minKeyLen(usable[j])
	})

	return usable[0], true
}
