// Package stats computes aggregate learning statistics from a user's
// response history. All computation happens over in-memory rows; the
// per-theme breakdown is the only aggregate pushed down to SQL.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/aulavirtual/tutoria/internal/model"
)

// Overview holds the global counters plus the 24-hour precision trend.
type Overview struct {
	Done     int     `json:"hechos"`
	Correct  int     `json:"correctos"`
	Ratio    float64 `json:"porcentaje"`
	Trend24h float64 `json:"trend24h"`
}

// TimelinePoint is one UTC calendar day of activity.
type TimelinePoint struct {
	Date         string  `json:"date"`
	CorrectRatio float64 `json:"correctRatio"`
}

// ThemeStat is a per-theme aggregate for one user.
type ThemeStat struct {
	ThemeID int64   `json:"theme_id"`
	Theme   string  `json:"theme"`
	Done    int     `json:"done"`
	Correct int     `json:"correct"`
	Ratio   float64 `json:"ratio"`
}

// Round1 rounds to one decimal, half away from zero.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Percent returns 100*correct/total rounded to one decimal, or 0.0 when
// total is zero.
func Percent(correct, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return Round1(100 * float64(correct) / float64(total))
}

// ComputeOverview aggregates the user's full response history. The trend
// compares precision over [now-24h, now) against [now-48h, now-24h); either
// window being empty yields 0.0.
func ComputeOverview(responses []model.UserResponse, now time.Time) Overview {
	var correct int
	for _, r := range responses {
		if r.Correct {
			correct++
		}
	}
	return Overview{
		Done:     len(responses),
		Correct:  correct,
		Ratio:    Percent(correct, len(responses)),
		Trend24h: trend24h(responses, now),
	}
}

func trend24h(responses []model.UserResponse, now time.Time) float64 {
	h24 := now.Add(-24 * time.Hour)
	h48 := now.Add(-48 * time.Hour)

	var t1, c1, t0, c0 int
	for _, r := range responses {
		switch {
		case !r.CreatedAt.Before(h24) && r.CreatedAt.Before(now):
			t1++
			if r.Correct {
				c1++
			}
		case !r.CreatedAt.Before(h48) && r.CreatedAt.Before(h24):
			t0++
			if r.Correct {
				c0++
			}
		}
	}

	if t1 == 0 || t0 == 0 {
		return 0.0
	}
	p1 := 100 * float64(c1) / float64(t1)
	p0 := 100 * float64(c0) / float64(t0)
	return Round1(p1 - p0)
}

// ComputeTimeline buckets responses by UTC calendar day, ascending.
func ComputeTimeline(responses []model.UserResponse) []TimelinePoint {
	type bucket struct {
		total   int
		correct int
	}
	buckets := make(map[string]*bucket)
	for _, r := range responses {
		day := r.CreatedAt.UTC().Format("2006-01-02")
		b := buckets[day]
		if b == nil {
			b = &bucket{}
			buckets[day] = b
		}
		b.total++
		if r.Correct {
			b.correct++
		}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]TimelinePoint, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		points = append(points, TimelinePoint{
			Date:         day,
			CorrectRatio: Percent(b.correct, b.total),
		})
	}
	return points
}
