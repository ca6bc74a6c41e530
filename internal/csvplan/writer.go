package csvplan

import (
	"strconv"
	"strings"

	"github.com/julianstephens/meditrack/internal/models"
)

// Header is the first line written by Serialize.
const Header = "date,duration,note"

// Serialize writes plan as CSV text in date order, readable by Parse.
func Serialize(plan models.PlanMap) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")

	for _, day := range plan.SortedKeys() {
		entry := plan[day]
		b.WriteString(day)
		b.WriteByte(separator)
		b.WriteString(strconv.Itoa(entry.Duration))
		if entry.Note != "" {
			b.WriteByte(separator)
			b.WriteString(quoteCell(entry.Note))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// quoteCell escapes s for Parse. A value already wrapped in quotes gets an
// extra pair, since Parse drops one wrapping pair after unescaping.
func quoteCell(s string) string {
	if !strings.ContainsAny(s, `,"`) {
		return s
	}
	if len(s) >= 2 && s[0] == quote && s[len(s)-1] == quote {
		s = `"` + s + `"`
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
