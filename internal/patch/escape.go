package patch

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Esc escapes the four characters that would break markup or inject
// content when untrusted source text is embedded in the document.
func Esc(s string) string {
	return escaper.Replace(s)
}
