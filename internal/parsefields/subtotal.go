package parsefields

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/constants"
)

var reMoney = regexp.MustCompile(`[0-9]{1,3}(?:\.[0-9]{3})*,[0-9]{2}`)

// itemLineMarkers flag product lines (pieces, pairs, item numbers) whose
// amounts are never the summary subtotal.
var itemLineMarkers = []string{"pz", "paia", "nr"}

// ExtractSubtotal returns the middle amount of the first summary line that
// carries exactly three amounts, verbatim. When no line qualifies it returns
// constants.SubtotalReviewSentinel.
func ExtractSubtotal(lines Lines) string {
	for i := 0; i < lines.Len(); i++ {
		line, _ := lines.At(i)
		if isItemLine(line) {
			continue
		}
		amounts := reMoney.FindAllString(line, -1)
		if len(amounts) == 3 {
			return amounts[1]
		}
	}
	return constants.SubtotalReviewSentinel
}

func isItemLine(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range itemLineMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
