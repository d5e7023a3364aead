package parsefields

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/internal/entity"
)

const (
	ddtDateMarker = "del"
	ddtDigits     = 5
)

var (
	reDDT        = regexp.MustCompile(`\bDDT\s+(.+)`)
	reDDTDateDel = regexp.MustCompile(`del\s*([0-9]{2}-[0-9]{2}-[0-9]{4})`)
	reDate       = regexp.MustCompile(`([0-9]{2}-[0-9]{2}-[0-9]{4})`)
)

// ExtractDeliveryNotes collects the unique (number, date) delivery-note
// references in line order. A reference whose date cannot be found on its
// line or the two that follow is dropped.
func ExtractDeliveryNotes(lines Lines) entity.DeliveryNotes {
	var notes entity.DeliveryNotes
	seen := make(map[entity.DeliveryNote]struct{})

	for i := 0; i < lines.Len(); i++ {
		line, _ := lines.At(i)
		m := reDDT.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		number, ok := deliveryNoteNumber(m[1])
		if !ok {
			continue
		}
		date, ok := deliveryNoteDate(lines, i)
		if !ok {
			continue
		}
		note := entity.DeliveryNote{Number: number, Date: strings.ReplaceAll(date, "-", "/")}
		if _, dup := seen[note]; dup {
			continue
		}
		seen[note] = struct{}{}
		notes = append(notes, note)
	}
	return notes
}

// deliveryNoteNumber keeps the last five digits of the reference before its
// "del <date>" tail.
func deliveryNoteNumber(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, ddtDateMarker); idx >= 0 {
		raw = raw[:idx]
	}
	raw = strings.ReplaceAll(raw, " ", "")

	var digits []byte
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if len(digits) < ddtDigits {
		return "", false
	}
	return string(digits[len(digits)-ddtDigits:]), true
}

// deliveryNoteDate looks for the date on line i, then across the line break
// into i+1, then across i+1 and i+2.
func deliveryNoteDate(lines Lines, i int) (string, bool) {
	line, _ := lines.At(i)
	if m := reDDTDateDel.FindStringSubmatch(line); m != nil {
		return m[1], true
	}

	next, ok := lines.At(i + 1)
	if !ok {
		return "", false
	}
	tail := line
	if idx := strings.Index(line, ddtDateMarker); idx >= 0 {
		tail = line[idx+len(ddtDateMarker):]
	}
	if m := reDate.FindStringSubmatch(strings.TrimSpace(tail) + strings.TrimSpace(next)); m != nil {
		return m[1], true
	}

	next2, ok := lines.At(i + 2)
	if !ok {
		return "", false
	}
	if m := reDate.FindStringSubmatch(line + next + next2); m != nil {
		return m[1], true
	}
	return "", false
}
