package parsefields

import (
	"regexp"

	"github.com/joseph-ayodele/invoice-extractor/constants"
)

var reHeader = regexp.MustCompile(`TD\d+\s+[^\n]*?\s+([0-9A-Za-z/]+)\s+(\d{2}-\d{2}-\d{4})`)

// ExtractHeader finds the document-type line ("TD01 ... <number> <dd-mm-yyyy>")
// and returns the prefixed document number and its date. Both are empty when
// no line matches.
func ExtractHeader(text string) (number, date string) {
	m := reHeader.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	return constants.DocumentNumberPrefix + m[1], m[2]
}
