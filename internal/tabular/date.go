package tabular

import (
	"strings"
	"time"
)

// dateLayouts is the ordered set of timestamp renderings the exporters
// have shipped. Day-first forms outrank month-first ones because that is
// what the feeds actually contain.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"2006/01/02",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// ParseDate attempts the known exporter layouts in order, then one
// permissive last-resort pass over the date fragment alone. The second
// return is false when nothing matches; callers exclude such rows from
// range comparison but keep them for non-date aggregation.
func ParseDate(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return parseDateLoose(v)
}

// parseDateLoose drops any trailing time-of-day fragment and tolerates
// swapped separators, then retries the bare date.
func parseDateLoose(v string) (time.Time, bool) {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	head := strings.ReplaceAll(fields[0], "/", "-")
	head = strings.ReplaceAll(head, ".", "-")
	for _, layout := range []string{"2006-1-2", "2-1-2006"} {
		if t, err := time.Parse(layout, head); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
