package shift

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeShiftRepo struct {
	records []Record
	err     error
}

func (r *fakeShiftRepo) List(_ context.Context) ([]Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

func TestService_WeeklyShifts_FiltersWindowAndName(t *testing.T) {
	t.Parallel()

	repo := &fakeShiftRepo{records: []Record{
		{Name: "山田", Date: "2025/09/01", StartTime: "09:00", EndTime: "17:00"},
		{Name: "山田", Date: "2025/09/07", StartTime: "13:00", EndTime: "21:00"},
		{Name: "山田", Date: "2025/09/08", StartTime: "09:00", EndTime: "17:00"}, // 窓の外
		{Name: "佐藤", Date: "2025/09/02", StartTime: "09:00", EndTime: "17:00"},
		{Name: "山田", Date: "2025/08/31", StartTime: "09:00", EndTime: "17:00"}, // 過去
	}}
	clk := &stubClock{now: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)}
	svc := NewService(repo, clk)

	result, err := svc.WeeklyShifts(context.Background(), WeeklyShiftsInput{Name: "山田"})
	if err != nil {
		t.Fatalf("WeeklyShifts returned error: %v", err)
	}

	if result.From != "2025/09/01" || result.To != "2025/09/07" {
		t.Fatalf("unexpected window: %s - %s", result.From, result.To)
	}
	if len(result.Shifts) != 2 {
		t.Fatalf("expected 2 shifts, got %d: %+v", len(result.Shifts), result.Shifts)
	}
	if result.Shifts[0].Date != "2025/09/01" || result.Shifts[1].Date != "2025/09/07" {
		t.Fatalf("expected date order, got %+v", result.Shifts)
	}
}

func TestService_WeeklyShifts_MonthBoundary(t *testing.T) {
	t.Parallel()

	// 8/31 起点の窓は 9/6 まで。月を跨いでも 7 日分が連続して入る。
	repo := &fakeShiftRepo{records: []Record{
		{Name: "山田", Date: "2025/08/31", StartTime: "09:00", EndTime: "17:00"},
		{Name: "山田", Date: "2025/09/01", StartTime: "09:00", EndTime: "17:00"},
		{Name: "山田", Date: "2025/09/06", StartTime: "09:00", EndTime: "17:00"},
		{Name: "山田", Date: "2025/09/07", StartTime: "09:00", EndTime: "17:00"},
	}}
	clk := &stubClock{now: time.Date(2025, 8, 31, 23, 0, 0, 0, time.UTC)}
	svc := NewService(repo, clk)

	result, err := svc.WeeklyShifts(context.Background(), WeeklyShiftsInput{Name: "山田"})
	if err != nil {
		t.Fatalf("WeeklyShifts returned error: %v", err)
	}

	if result.From != "2025/08/31" || result.To != "2025/09/06" {
		t.Fatalf("unexpected window: %s - %s", result.From, result.To)
	}
	if len(result.Shifts) != 3 {
		t.Fatalf("expected 3 shifts in window, got %+v", result.Shifts)
	}
}

func TestService_WeeklyShifts_YearBoundary(t *testing.T) {
	t.Parallel()

	repo := &fakeShiftRepo{records: []Record{
		{Name: "山田", Date: "2026/01/02", StartTime: "09:00", EndTime: "17:00"},
	}}
	clk := &stubClock{now: time.Date(2025, 12, 30, 9, 0, 0, 0, time.UTC)}
	svc := NewService(repo, clk)

	result, err := svc.WeeklyShifts(context.Background(), WeeklyShiftsInput{Name: "山田"})
	if err != nil {
		t.Fatalf("WeeklyShifts returned error: %v", err)
	}
	if result.To != "2026/01/05" {
		t.Fatalf("expected window end 2026/01/05, got %s", result.To)
	}
	if len(result.Shifts) != 1 {
		t.Fatalf("expected the new-year shift, got %+v", result.Shifts)
	}
}

func TestService_WeeklyShifts_Empty(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeShiftRepo{}, &stubClock{now: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)})

	result, err := svc.WeeklyShifts(context.Background(), WeeklyShiftsInput{Name: "山田"})
	if err != nil {
		t.Fatalf("WeeklyShifts returned error: %v", err)
	}
	if len(result.Shifts) != 0 {
		t.Fatalf("expected no shifts, got %+v", result.Shifts)
	}
}

func TestService_WeeklyShifts_InvalidName(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeShiftRepo{}, nil)
	if _, err := svc.WeeklyShifts(context.Background(), WeeklyShiftsInput{Name: " "}); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}
