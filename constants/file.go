package constants

import "strings"

// AllowedExtensions holds the file extensions eligible for a batch.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps an extension onto the document format read for it.
func MapExtToFormat(ext string) (string, bool) {
	switch NormalizeExt(ext) {
	case "pdf":
		return "PDF", true
	default:
		return "", false
	}
}
