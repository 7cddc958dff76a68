package logging

import "time"

// Console timestamps use local wall-clock time, matching catalog created_date.
const logTimestampLayout = time.DateTime

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Local().Format(logTimestampLayout)
}
