package attendance

import (
	"context"
	"strings"
	"time"
)

const (
	dateLayout = "2006/01/02"
	timeLayout = "15:04"

	minutesPerDay = 24 * 60
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct {
	loc *time.Location
}

func (c realClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// NewClock は指定のタイムゾーンで現在時刻を返す Clock を生成します。
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return realClock{loc: loc}
}

// Service は打刻と勤務時間集計のユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
}

// UseCase は勤怠ユースケースの公開インターフェースです。
type UseCase interface {
	ClockIn(ctx context.Context, in ClockInInput) (*ClockInResult, error)
	ClockOut(ctx context.Context, in ClockOutInput) (*ClockOutResult, error)
	Summarize(ctx context.Context, in SummarizeInput) (*Summary, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = realClock{loc: time.Local}
	}
	return &Service{repo: repo, clock: clock}
}

// ClockInInput は出勤打刻の入力です。
type ClockInInput struct {
	Name string
}

// ClockInResult は追記された打刻内容を表します。
type ClockInResult struct {
	Date    string
	ClockIn string
}

// ClockOutInput は退勤打刻の入力です。
type ClockOutInput struct {
	Name string
}

// ClockOutResult は更新された打刻内容を表します。
type ClockOutResult struct {
	Date     string
	ClockIn  string
	ClockOut string
}

// SummarizeInput は勤務時間集計の入力です。Month を指定すると、その月に
// 属する日付の行だけを合算します。nil の場合は全期間です。
type SummarizeInput struct {
	Name  string
	Month *time.Time
}

// Summary は勤務時間の合計です。
type Summary struct {
	TotalMinutes int
	Hours        int
	Minutes      int
}

// ClockIn は当日の日付と現在時刻で出勤行を追記します。同一ユーザーの
// 未退勤行が既にあっても重複チェックは行いません。退勤は常に最新の
// 未退勤行だけを閉じるため、閉じ忘れの行は残り続けます。
func (s *Service) ClockIn(ctx context.Context, in ClockInInput) (*ClockInResult, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rec := Record{
		Date:    now.Format(dateLayout),
		Name:    name,
		ClockIn: now.Format(timeLayout),
		Status:  StatusClockedIn,
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		return nil, err
	}

	return &ClockInResult{Date: rec.Date, ClockIn: rec.ClockIn}, nil
}

// ClockOut は末尾から走査して最初に見つかった未退勤行を 1 行だけ閉じ
// ます。未退勤行が無い場合は ErrNoOpenRecord を返します。
func (s *Service) ClockOut(ctx context.Context, in ClockOutInput) (*ClockOutResult, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if rec.Name != name || !rec.Open() {
			continue
		}

		clockOut := s.clock.Now().Format(timeLayout)
		if err := s.repo.MarkClockedOut(ctx, rec.Row, clockOut); err != nil {
			return nil, err
		}

		return &ClockOutResult{Date: rec.Date, ClockIn: rec.ClockIn, ClockOut: clockOut}, nil
	}

	return nil, ErrNoOpenRecord
}

// Summarize は出勤・退勤の両方が埋まった行の勤務時間を分単位で合算し
// ます。退勤時刻が出勤時刻より前の行は日跨ぎ勤務として 24 時間を加算
// して扱います。
func (s *Service) Summarize(ctx context.Context, in SummarizeInput) (*Summary, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, rec := range records {
		if rec.Name != name || rec.ClockIn == "" || rec.ClockOut == "" {
			continue
		}
		if in.Month != nil && !sameMonth(rec.Date, *in.Month) {
			continue
		}

		minutes, ok := workedMinutes(rec.ClockIn, rec.ClockOut)
		if !ok {
			// 手入力などで時刻が壊れている行は集計から外す。
			continue
		}
		total += minutes
	}

	return &Summary{TotalMinutes: total, Hours: total / 60, Minutes: total % 60}, nil
}

func workedMinutes(clockIn, clockOut string) (int, bool) {
	in, err := time.Parse(timeLayout, clockIn)
	if err != nil {
		return 0, false
	}
	out, err := time.Parse(timeLayout, clockOut)
	if err != nil {
		return 0, false
	}

	minutes := int(out.Sub(in).Minutes())
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return minutes, true
}

func sameMonth(date string, month time.Time) bool {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	return d.Year() == month.Year() && d.Month() == month.Month()
}

func normalizeName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidName
	}
	return trimmed, nil
}
