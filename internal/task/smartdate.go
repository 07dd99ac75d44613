package task

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// SmartDate is the result of running the natural-language date parser over
// a capture. When no date phrase is found, CleanTitle equals the input and
// everything else stays zero.
type SmartDate struct {
	CleanTitle   string     `json:"clean_title"`
	DetectedDate *time.Time `json:"detected_date,omitempty"`
	DetectedText string     `json:"detected_text,omitempty"`
	HasTime      bool       `json:"has_time"`
	StartIndex   int        `json:"start_index"`
	EndIndex     int        `json:"end_index"`
}

var dateParser = newDateParser()

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

var (
	clockRe = regexp.MustCompile(`(?i)\b\d{1,2}(:\d{2})?\s*(am|pm)\b|\b\d{1,2}:\d{2}\b|\bnoon\b|\bmidnight\b`)
	prepRe  = regexp.MustCompile(`(?i)^(by|at|on|for|until|before)\b|\b(by|at|on|for|until|before)$`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// ParseSmartDate extracts the first date phrase from input, strips it, and
// cleans leftover prepositions from both ends of the remaining halves.
func ParseSmartDate(input string, now time.Time) SmartDate {
	out := SmartDate{CleanTitle: input, StartIndex: -1, EndIndex: -1}

	r, err := dateParser.Parse(input, now)
	if err != nil || r == nil {
		return out
	}

	start, end := r.Index, r.Index+len(r.Text)
	left := cleanEdgePrepositions(input[:start])
	right := cleanEdgePrepositions(input[end:])

	title := strings.TrimSpace(left + " " + right)
	title = spaceRe.ReplaceAllString(title, " ")

	d := r.Time
	out.CleanTitle = title
	out.DetectedDate = &d
	out.DetectedText = r.Text
	out.HasTime = clockRe.MatchString(r.Text)
	out.StartIndex = start
	out.EndIndex = end
	return out
}

// cleanEdgePrepositions trims dangling connective words left behind after
// the date span is removed, e.g. "Call mom by" -> "Call mom".
func cleanEdgePrepositions(s string) string {
	s = strings.TrimSpace(s)
	for {
		next := strings.TrimSpace(prepRe.ReplaceAllString(s, ""))
		if next == s {
			return s
		}
		s = next
	}
}
