// Package parsing holds pure helpers for deriving filesystem names and dates.
package parsing

import "strings"

// illegalReplacer strips characters that are invalid in file and directory
// names on common filesystems.
var illegalReplacer = strings.NewReplacer(
	"<", "",
	">", "",
	":", "",
	`"`, "",
	"/", "",
	`\`, "",
	"|", "",
	"?", "",
	"*", "",
)

// Sanitize removes filesystem-illegal characters and trims surrounding
// whitespace. Interior whitespace is left untouched, so consecutive spaces
// produced by stripped characters are preserved.
func Sanitize(text string) string {
	return strings.TrimSpace(illegalReplacer.Replace(text))
}
