// Package format renders dates and times the way the bot speaks them.
package format

import (
	"fmt"
	"time"
)

// Indexed by time.Weekday (Sunday first).
var weekdayNames = [7]string{"週日", "週一", "週二", "週三", "週四", "週五", "週六"}

func Weekday(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// EventTime renders the short form used in reminder pushes, e.g. "01月20日 19:00".
func EventTime(t time.Time) string {
	return fmt.Sprintf("%02d月%02d日 %02d:%02d", int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

// FullTime renders the long form used in confirmations and lists.
func FullTime(t time.Time) string {
	return t.Format("2006/01/02 15:04")
}
