package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/kintai-line-bot/internal/core/attendance"
	"github.com/ogurasousui/kintai-line-bot/internal/core/shift"
	"github.com/ogurasousui/kintai-line-bot/internal/core/vacation"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeAttendance struct {
	clockInName   string
	clockInErr    error
	clockOutName  string
	clockOutErr   error
	summarizeIn   attendance.SummarizeInput
	summarizeErr  error
	summarizeYeld attendance.Summary
}

func (f *fakeAttendance) ClockIn(_ context.Context, in attendance.ClockInInput) (*attendance.ClockInResult, error) {
	f.clockInName = in.Name
	if f.clockInErr != nil {
		return nil, f.clockInErr
	}
	return &attendance.ClockInResult{Date: "2025/09/01", ClockIn: "09:00"}, nil
}

func (f *fakeAttendance) ClockOut(_ context.Context, in attendance.ClockOutInput) (*attendance.ClockOutResult, error) {
	f.clockOutName = in.Name
	if f.clockOutErr != nil {
		return nil, f.clockOutErr
	}
	return &attendance.ClockOutResult{Date: "2025/09/01", ClockIn: "09:00", ClockOut: "17:30"}, nil
}

func (f *fakeAttendance) Summarize(_ context.Context, in attendance.SummarizeInput) (*attendance.Summary, error) {
	f.summarizeIn = in
	if f.summarizeErr != nil {
		return nil, f.summarizeErr
	}
	return &f.summarizeYeld, nil
}

type fakeShifts struct {
	result shift.WeeklyShiftsResult
	err    error
}

func (f *fakeShifts) WeeklyShifts(_ context.Context, _ shift.WeeklyShiftsInput) (*shift.WeeklyShiftsResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.result, nil
}

type fakeVacations struct {
	submitIn  vacation.SubmitInput
	submitErr error
	approveIn vacation.ApproveInput
	approveOk *vacation.ApproveResult
	approveEr error
}

func (f *fakeVacations) Submit(_ context.Context, in vacation.SubmitInput) (*vacation.SubmitResult, error) {
	f.submitIn = in
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &vacation.SubmitResult{Date: "2025/09/15", Kind: "有休", Reason: "体調不良", Notified: true}, nil
}

func (f *fakeVacations) Approve(_ context.Context, in vacation.ApproveInput) (*vacation.ApproveResult, error) {
	f.approveIn = in
	if f.approveEr != nil {
		return nil, f.approveEr
	}
	if f.approveOk != nil {
		return f.approveOk, nil
	}
	return &vacation.ApproveResult{Date: in.Date, Name: in.Name, Kind: "有休"}, nil
}

type fakeProfiles struct {
	name string
	err  error
}

func (f *fakeProfiles) DisplayName(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.name, nil
}

func newTestDispatcher(att *fakeAttendance, sh *fakeShifts, vac *fakeVacations, profiles ProfileSource, admin string) *Dispatcher {
	if att == nil {
		att = &fakeAttendance{}
	}
	if sh == nil {
		sh = &fakeShifts{}
	}
	if vac == nil {
		vac = &fakeVacations{}
	}
	if profiles == nil {
		profiles = &fakeProfiles{name: "山田"}
	}
	return NewDispatcher(Deps{
		Attendance:  att,
		Shifts:      sh,
		Vacations:   vac,
		Profiles:    profiles,
		Clock:       &stubClock{now: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)},
		AdminUserID: admin,
	})
}

func TestDispatcher_ClockInCommand(t *testing.T) {
	t.Parallel()

	att := &fakeAttendance{}
	d := newTestDispatcher(att, nil, nil, nil, "")

	reply := d.HandleText(context.Background(), TextEvent{UserID: "U1", Text: " 出勤 "})

	if att.clockInName != "山田" {
		t.Fatalf("expected resolved display name, got %q", att.clockInName)
	}
	if reply.Text != "出勤を記録しました！（09:00）" {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestDispatcher_ClockIn_StoreFailureSuppressed(t *testing.T) {
	t.Parallel()

	att := &fakeAttendance{clockInErr: errors.New("store down")}
	d := newTestDispatcher(att, nil, nil, nil, "")

	reply := d.HandleText(context.Background(), TextEvent{UserID: "U1", Text: "出勤"})
	if reply.Text != msgClockInFallback {
		t.Fatalf("write failure must stay invisible to the user, got %q", reply.Text)
	}
}

func TestDispatcher_ClockOut_NoOpenRecord(t *testing.T) {
	t.Parallel()

	att := &fakeAttendance{clockOutErr: attendance.ErrNoOpenRecord}
	d := newTestDispatcher(att, nil, nil, nil, "")

	reply := d.HandleText(context.Background(), TextEvent{UserID: "U1", Text: "退勤"})
	if reply.Text != msgNoOpenRecord {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestDispatcher_Summary_PassesCurrentMonth(t *testing.T) {
	t.Parallel()

	att := &fakeAttendance{summarizeYeld: attendance.Summary{TotalMinutes: 510, Hours: 8, Minutes: 30}}
	d := newTestDispatcher(att, nil, nil, nil, "")

	reply := d.HandleText(context.Background(), TextEvent{UserID: "U1", Text: "集計"})

	if att.summarizeIn.Month == nil || att.summarizeIn.Month.Month() != time.September {
		t.Fatalf("expected current month filter, got %+v", att.summarizeIn.Month)
	}
	if reply.Text != "山田さんの今月の勤務時間は 8時間30分 です" {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestDispatcher_ProfileFailureFallsBackToUserID(t *testing.T) {
	t.Parallel()

	att := &fakeAttendance{}
	d := newTestDispatcher(att, nil, nil, &fakeProfiles{err: errors.New("api down")}, "")

	d.HandleText(context.Background(), TextEvent{UserID: "U123", Text: "出勤"})
	if att.clockInName != "U123" {
		t.Fatalf("expected raw user id fallback, got %q", att.clockInName)
	}
}

func TestDispatcher_ShiftLines(t *testing.T) {
	t.Parallel()

	sh := &fakeShifts{result: shift.WeeklyShiftsResult{
		From: "2025/09/01",
		To:   "2025/09/07",
		Shifts: []shift.Record{
			{Name: "山田", Date: "2025/09/02", StartTime: "09:00", EndTime: "17:00"},
			{Name: "山田", Date: "2025/09/05", StartTime: "13:00", EndTime: "21:00"},
		},
	}}
	d := newTestDispatcher(nil, sh, nil, nil, "")

	reply := d.HandleText(context.Background(), TextEvent{UserID: "U1", Text: "シフト確認"})

	want := "2025/09/02: 09:00〜17:00\n2025/09/05: 13:00〜21:00"
	if reply.Text != want {
		t.Fatalf("unexpected reply:\n%q\nwant:\n%q", reply.Text, want)
	}
}

func TestDispatcher_ShiftEmpty(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(nil, &fakeShifts{}, nil, nil, "")
	reply := d.HandleText(context.Background(), TextEvent{UserID: "U1", Text: "シフト確認"})
	if reply.Text != msgNoShifts {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestDispatcher_VacationSubmit(t *testing.T) {
	t.Parallel()

	vac := &fakeVacations{}
	d := newTestDispatcher(nil, nil, vac, nil, "")

	reply := d.HandleText(context.Background(), TextEvent{UserID: "U1", Text: "休暇申請 有休 2025/09/15 体調不良"})

	if vac.submitIn.Name != "山田" || !strings.HasPrefix(vac.submitIn.RawCommand, "休暇申請") {
		t.Fatalf("unexpected submit input: %+v", vac.submitIn)
	}
	if reply.Text != "休暇申請を受け付けました（2025/09/15 / 有休）" {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestDispatcher_VacationSubmit_Malformed(t *testing.T) {
	t.Parallel()

	vac := &fakeVacations{submitErr: vacation.ErrMalformedRequest}
	d := newTestDispatcher(nil, nil, vac, nil, "")

	reply := d.HandleText(context.Background(), TextEvent{UserID: "U1", Text: "休暇申請"})
	if reply.Text != msgVacationFormat {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestDispatcher_Approve_AdminOnly(t *testing.T) {
	t.Parallel()

	vac := &fakeVacations{}
	d := newTestDispatcher(nil, nil, vac, nil, "ADMIN")

	// 管理者以外の承認コマンドはオウム返しに落ちる。
	reply := d.HandleText(context.Background(), TextEvent{UserID: "U1", Text: "承認 2025/09/15 山田"})
	if !strings.Contains(reply.Text, "ですね！") {
		t.Fatalf("non-admin approve should echo, got %q", reply.Text)
	}
	if vac.approveIn.Date != "" {
		t.Fatalf("non-admin approve must not reach the workflow")
	}

	reply = d.HandleText(context.Background(), TextEvent{UserID: "ADMIN", Text: "承認 2025/09/15 山田"})
	if vac.approveIn.Date != "2025/09/15" || vac.approveIn.Name != "山田" {
		t.Fatalf("unexpected approve input: %+v", vac.approveIn)
	}
	if reply.Text != "2025/09/15 の 山田 さんの休暇申請を承認しました。" {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestDispatcher_Approve_NotFound(t *testing.T) {
	t.Parallel()

	vac := &fakeVacations{approveEr: vacation.ErrRequestNotFound}
	d := newTestDispatcher(nil, nil, vac, nil, "ADMIN")

	reply := d.HandleText(context.Background(), TextEvent{UserID: "ADMIN", Text: "承認 2025/09/16 山田"})
	if reply.Text != msgApproveNotFound {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestDispatcher_MenuReply(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(nil, nil, nil, nil, "")
	reply := d.HandleText(context.Background(), TextEvent{UserID: "U1", Text: "メニュー"})

	if reply.Menu == nil {
		t.Fatalf("expected a template reply")
	}
	if len(reply.Menu.Actions) != 4 {
		t.Fatalf("expected 4 menu actions, got %d", len(reply.Menu.Actions))
	}
	if reply.Menu.Actions[0].Data != ActionClockIn {
		t.Fatalf("unexpected first action: %+v", reply.Menu.Actions[0])
	}
}

func TestDispatcher_EchoFallback(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(nil, nil, nil, nil, "")
	reply := d.HandleText(context.Background(), TextEvent{UserID: "U1", Text: "おはよう"})
	if reply.Text != "「おはよう」ですね！了解です🦊" {
		t.Fatalf("unexpected echo: %q", reply.Text)
	}
}

func TestDispatcher_Postback(t *testing.T) {
	t.Parallel()

	att := &fakeAttendance{}
	d := newTestDispatcher(att, nil, nil, nil, "")

	reply := d.HandlePostback(context.Background(), PostbackEvent{UserID: "U1", Action: ActionClockOut})
	if att.clockOutName != "山田" {
		t.Fatalf("postback clock_out should reach the engine, got %q", att.clockOutName)
	}
	if reply.Text != "退勤を記録しました！（17:30）" {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}

	reply = d.HandlePostback(context.Background(), PostbackEvent{UserID: "U1", Action: ActionVacation})
	if reply.Text != msgVacationUsage {
		t.Fatalf("vacation postback should return instructions, got %q", reply.Text)
	}

	reply = d.HandlePostback(context.Background(), PostbackEvent{UserID: "U1", Action: "bogus"})
	if reply.Text != msgUnknownAction {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}
