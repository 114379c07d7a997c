package shift

import (
	"context"
	"sort"
	"strings"
	"time"
)

const (
	dateLayout = "2006/01/02"

	weeklyWindowDays = 7
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

// Service はシフト参照のユースケースです。
type Service struct {
	repo  Repository
	clock Clock
}

// UseCase はシフト参照ユースケースの公開インターフェースです。
type UseCase interface {
	WeeklyShifts(ctx context.Context, in WeeklyShiftsInput) (*WeeklyShiftsResult, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = realClock{loc: time.Local}
	}
	return &Service{repo: repo, clock: clock}
}

// WeeklyShiftsInput は週間シフト取得の入力です。
type WeeklyShiftsInput struct {
	Name string
}

// WeeklyShiftsResult は今日から 7 日分のシフトを日付順で保持します。
type WeeklyShiftsResult struct {
	From   string
	To     string
	Shifts []Record
}

// WeeklyShifts は今日を起点とする 7 日間の窓に入るシフトを名前で絞り
// 込んで返します。窓の両端は time.AddDate で求めるため、月末・年末を
// 跨いでも日付が欠けたり重複したりしません。
func (s *Service) WeeklyShifts(ctx context.Context, in WeeklyShiftsInput) (*WeeklyShiftsResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, weeklyWindowDays-1)

	var matched []Record
	for _, rec := range records {
		if rec.Name != name {
			continue
		}
		d, err := time.ParseInLocation(dateLayout, rec.Date, now.Location())
		if err != nil {
			continue
		}
		if d.Before(from) || d.After(to) {
			continue
		}
		matched = append(matched, rec)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date < matched[j].Date
	})

	return &WeeklyShiftsResult{
		From:   from.Format(dateLayout),
		To:     to.Format(dateLayout),
		Shifts: matched,
	}, nil
}
