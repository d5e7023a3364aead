package parsefields

import (
	"regexp"
	"strings"
)

// purchaseOrderMatchers are tried in order; the first hit wins.
var purchaseOrderMatchers = Chain{
	RegexMatcher{Name: "vs-ord", Pattern: regexp.MustCompile(`(?i)Vs\.?Ord\.?\s*(?:PO\s*)?([0-9][0-9/\-\s]+)`)},
	RegexMatcher{Name: "po", Pattern: regexp.MustCompile(`(?i)\bPO\s+([0-9/\-\s]+)`)},
	RegexMatcher{Name: "ordine", Pattern: regexp.MustCompile(`(?i)Ordine\s+([0-9/\-\s]+)`)},
}

// ExtractPurchaseOrder returns the customer order reference, capped at
// MaxPODigits digits, or "" when no strategy matches.
func ExtractPurchaseOrder(text string) string {
	po, _ := MatchPurchaseOrder(text)
	return po
}

// MatchPurchaseOrder is ExtractPurchaseOrder that also reports the winning
// strategy name.
func MatchPurchaseOrder(text string) (po, strategy string) {
	m, ok := purchaseOrderMatchers.TryExtract(text)
	if !ok {
		return "", ""
	}
	return LimitDigits(strings.TrimSpace(m.Group(0))), m.Strategy
}
