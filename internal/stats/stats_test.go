package stats

import (
	"testing"
	"time"

	"github.com/aulavirtual/tutoria/internal/model"
)

func resp(correct bool, at time.Time) model.UserResponse {
	return model.UserResponse{Correct: correct, CreatedAt: at}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{66.666, 66.7},
		{66.64, 66.6},
		{0.25, 0.3},   // half away from zero
		{-0.25, -0.3}, // half away from zero
		{0, 0},
		{100, 100},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(2, 3); got != 66.7 {
		t.Errorf("Percent(2, 3) = %v, want 66.7", got)
	}
	if got := Percent(0, 0); got != 0.0 {
		t.Errorf("Percent(0, 0) = %v, want 0.0", got)
	}
	if got := Percent(1, 1); got != 100.0 {
		t.Errorf("Percent(1, 1) = %v, want 100.0", got)
	}
}

func TestComputeOverview(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// One correct answer 36h ago, then one wrong and one correct within
	// the last 24h. Recent precision 50% against prior 100%.
	responses := []model.UserResponse{
		resp(true, now.Add(-36*time.Hour)),
		resp(false, now.Add(-10*time.Hour)),
		resp(true, now.Add(-2*time.Hour)),
	}

	got := ComputeOverview(responses, now)
	want := Overview{Done: 3, Correct: 2, Ratio: 66.7, Trend24h: -50.0}
	if got != want {
		t.Errorf("ComputeOverview = %+v, want %+v", got, want)
	}
}

func TestComputeOverviewEmpty(t *testing.T) {
	got := ComputeOverview(nil, time.Now().UTC())
	want := Overview{Done: 0, Correct: 0, Ratio: 0.0, Trend24h: 0.0}
	if got != want {
		t.Errorf("ComputeOverview(nil) = %+v, want %+v", got, want)
	}
}

func TestTrend24hEmptyWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Activity only in the recent window: no baseline, trend is 0.0.
	recentOnly := []model.UserResponse{
		resp(true, now.Add(-1 * time.Hour)),
		resp(false, now.Add(-3 * time.Hour)),
	}
	if got := ComputeOverview(recentOnly, now).Trend24h; got != 0.0 {
		t.Errorf("Trend24h with empty prior window = %v, want 0.0", got)
	}

	// Activity only in the prior window: no recent data, trend is 0.0.
	priorOnly := []model.UserResponse{
		resp(true, now.Add(-30 * time.Hour)),
	}
	if got := ComputeOverview(priorOnly, now).Trend24h; got != 0.0 {
		t.Errorf("Trend24h with empty recent window = %v, want 0.0", got)
	}

	// A response older than 48h belongs to neither window.
	stale := []model.UserResponse{
		resp(true, now.Add(-50 * time.Hour)),
		resp(true, now.Add(-30 * time.Hour)),
		resp(false, now.Add(-1 * time.Hour)),
	}
	if got := ComputeOverview(stale, now).Trend24h; got != -100.0 {
		t.Errorf("Trend24h = %v, want -100.0", got)
	}
}

func TestComputeTimeline(t *testing.T) {
	day1 := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)

	responses := []model.UserResponse{
		resp(true, day2),
		resp(true, day1),
		resp(false, day1),
		resp(false, day1.Add(5*time.Hour)),
	}

	points := ComputeTimeline(responses)
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	if points[0].Date != "2026-03-08" || points[0].CorrectRatio != 33.3 {
		t.Errorf("points[0] = %+v, want {2026-03-08 33.3}", points[0])
	}
	if points[1].Date != "2026-03-09" || points[1].CorrectRatio != 100.0 {
		t.Errorf("points[1] = %+v, want {2026-03-09 100}", points[1])
	}
}

func TestComputeTimelineUTCBoundary(t *testing.T) {
	// A response just before UTC midnight lands on the earlier day even
	// when its wall clock is in a different zone.
	loc := time.FixedZone("UTC+2", 2*3600)
	at := time.Date(2026, 3, 9, 1, 30, 0, 0, loc) // 2026-03-08 23:30 UTC

	points := ComputeTimeline([]model.UserResponse{resp(true, at)})
	if len(points) != 1 || points[0].Date != "2026-03-08" {
		t.Errorf("points = %+v, want single 2026-03-08 bucket", points)
	}
}

func TestComputeTimelineEmpty(t *testing.T) {
	points := ComputeTimeline(nil)
	if len(points) != 0 {
		t.Errorf("ComputeTimeline(nil) = %+v, want empty", points)
	}
}
