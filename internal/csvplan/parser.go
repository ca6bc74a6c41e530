// Package csvplan reads and writes ramp-up plans in the date,duration,note
// CSV format.
//
// The reader is deliberately forgiving: every line is checked on its own,
// problems are collected as LineErrors, and the remaining lines still
// contribute entries.
package csvplan

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/julianstephens/meditrack/internal/models"
	"github.com/julianstephens/meditrack/internal/utils"
)

const (
	ReasonMissingQuote  = "missing closing quote."
	ReasonTooFewColumns = "expected at least two columns (date,duration)."
	ReasonBadDuration   = "duration should be a positive number."
	reasonBadDate       = `could not understand date "%s".`

	minimumColumns = 2
	noteColumn     = 2
	quote          = '"'
	separator      = ','
)

var (
	headerDate     = regexp.MustCompile(`(?i)date`)
	headerDuration = regexp.MustCompile(`(?i)duration`)
	lineBreak      = regexp.MustCompile(`\r?\n`)
)

// LineError describes why one line of plan text was rejected.
// Line is 1-based and counts only non-blank lines.
type LineError struct {
	Line   int
	Reason string
}

func (e LineError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Reason)
}

// Result is the outcome of parsing plan text.
type Result struct {
	Plan   models.PlanMap
	Errors []LineError
}

// HasErrors reports whether any line was rejected.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Messages returns the rendered error lines in input order.
func (r Result) Messages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

// Parse turns raw CSV text into a plan. Later rows for the same day replace
// earlier ones.
func Parse(raw string) Result {
	res := Result{Plan: models.PlanMap{}}
	if strings.TrimSpace(raw) == "" {
		return res
	}

	lines := nonBlankLines(raw)
	for i, line := range lines {
		lineNo := i + 1

		cells, ok := splitLine(line)
		if !ok {
			res.Errors = append(res.Errors, LineError{Line: lineNo, Reason: ReasonMissingQuote})
			continue
		}
		for j := range cells {
			cells[j] = cleanCell(cells[j])
		}

		if i == 0 && isHeader(cells) {
			continue
		}

		day, entry, err := parseRow(lineNo, cells)
		if err != nil {
			res.Errors = append(res.Errors, *err)
			continue
		}
		res.Plan[day] = entry
	}

	return res
}

func parseRow(lineNo int, cells []string) (string, models.PlanEntry, *LineError) {
	if len(cells) < minimumColumns {
		return "", models.PlanEntry{}, &LineError{Line: lineNo, Reason: ReasonTooFewColumns}
	}

	date, err := utils.ParseCalendarDate(cells[0])
	if err != nil {
		return "", models.PlanEntry{}, &LineError{Line: lineNo, Reason: fmt.Sprintf(reasonBadDate, cells[0])}
	}

	minutes, ok := parseDuration(cells[1])
	if !ok {
		return "", models.PlanEntry{}, &LineError{Line: lineNo, Reason: ReasonBadDuration}
	}

	entry := models.PlanEntry{Duration: minutes}
	if len(cells) > noteColumn && cells[noteColumn] != "" {
		entry.Note = cells[noteColumn]
	}
	return utils.ToKey(date), entry, nil
}

// parseDuration accepts any finite positive number and rounds it to whole
// minutes. Sub-minute values round up to one minute so an accepted row never
// stores a zero-length day.
func parseDuration(s string) (int, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return max(1, int(math.Floor(v+0.5))), true
}

func nonBlankLines(raw string) []string {
	var out []string
	for _, line := range lineBreak.Split(raw, -1) {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// splitLine splits one line on commas outside quotes. A doubled quote inside
// a quoted field is a literal quote. ok is false when a quote is left open.
func splitLine(line string) (cells []string, ok bool) {
	var cur strings.Builder
	inQuotes := false
	runes := []rune(line)

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == quote && inQuotes && i+1 < len(runes) && runes[i+1] == quote:
			cur.WriteRune(quote)
			i++
		case ch == quote:
			inQuotes = !inQuotes
		case ch == separator && !inQuotes:
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	if inQuotes {
		return nil, false
	}
	return append(cells, cur.String()), true
}

// cleanCell trims a cell and drops one pair of quotes wrapping all of it.
func cleanCell(cell string) string {
	cell = strings.TrimSpace(cell)
	if len(cell) >= 2 && cell[0] == quote && cell[len(cell)-1] == quote {
		cell = cell[1 : len(cell)-1]
	}
	return cell
}

func isHeader(cells []string) bool {
	hasDate, hasDuration := false, false
	for _, c := range cells {
		if headerDate.MatchString(c) {
			hasDate = true
		}
		if headerDuration.MatchString(c) {
			hasDuration = true
		}
	}
	return hasDate && hasDuration
}
