package collection

import (
	"fmt"
	"time"

	"github.com/notewell/notewell/pkg/core"
)

// dateBuckets describes how a modification timestamp relates to now: the
// relative display text plus membership in the date categories. This week
// covers any note of the last eight calendar days, today and yesterday
// included.
type dateBuckets struct {
	Text        string
	IsToday     bool
	IsYesterday bool
	IsThisWeek  bool
}

// Average Gregorian month length in days.
const daysPerMonth = 30.436875

// bucketsFor categorizes a Unix-millisecond timestamp against now using
// calendar-day distance, so 23:59 yesterday still reads "yesterday" a
// minute later.
func bucketsFor(now time.Time, unixMillis int64) dateBuckets {
	mod := time.UnixMilli(unixMillis)
	days := calendarDaysBetween(mod, now)
	months := float64(days) / daysPerMonth

	var b dateBuckets
	switch {
	case months >= 12:
		b.Text = "long ago"
	case months >= 1:
		whole := int(months)
		if whole <= 1 {
			b.Text = "1 month ago"
		} else {
			b.Text = fmt.Sprintf("%d months ago", whole)
		}
	case days >= 21:
		b.Text = "3 weeks ago"
	case days >= 14:
		b.Text = "2 weeks ago"
	case days >= 8:
		b.Text = "last week"
	case days >= 2:
		b.Text = fmt.Sprintf("%d days ago", days)
		b.IsThisWeek = true
	case days >= 1:
		b.Text = "yesterday"
		b.IsYesterday = true
		b.IsThisWeek = true
	default:
		b.Text = "today"
		b.IsToday = true
		b.IsThisWeek = true
	}
	return b
}

func calendarDaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(toDay.Sub(fromDay).Hours() / 24)
}

func formatExactDate(unixMillis int64) string {
	return time.UnixMilli(unixMillis).Format("January 2, 2006")
}

// CategoryOf exposes the relative bucket of a note for callers that only
// need the membership flags.
func (s *Service) CategoryOf(note core.Note) []core.Category {
	b := bucketsFor(s.now(), note.ModificationDate)

	cats := []core.Category{core.CategoryAll}
	if b.IsToday {
		cats = append(cats, core.CategoryToday)
	}
	if b.IsYesterday {
		cats = append(cats, core.CategoryYesterday)
	}
	if b.IsThisWeek {
		cats = append(cats, core.CategoryThisWeek)
	}
	if note.IsMarked {
		cats = append(cats, core.CategoryMarked)
	}
	if note.NotebookID == "" {
		cats = append(cats, core.CategoryUnfiled)
	}
	return cats
}
