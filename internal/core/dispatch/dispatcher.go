package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ogurasousui/kintai-line-bot/internal/core/attendance"
	"github.com/ogurasousui/kintai-line-bot/internal/core/shift"
	"github.com/ogurasousui/kintai-line-bot/internal/core/vacation"
)

// テキストコマンド。前後の空白を除いた完全一致（休暇申請と承認のみ
// 前方一致）で判定します。
const (
	cmdClockIn  = "出勤"
	cmdClockOut = "退勤"
	cmdSummary  = "集計"
	cmdShifts   = "シフト確認"
	cmdMenu     = "メニュー"

	triggerVacation = "休暇申請"
	triggerApprove  = "承認"
)

const (
	msgClockInFallback  = "出勤を記録しました！"
	msgClockOutFallback = "退勤を記録しました！"
	msgNoOpenRecord     = "未退勤の出勤記録が見つかりませんでした。"
	msgStoreError       = "エラーが発生しました。時間をおいて再度お試しください。"
	msgNoShifts         = "直近1週間のシフトはありません。"
	msgVacationFormat   = "形式が正しくありません。\n例: 休暇申請 有休 2025/09/15 私用のため"
	msgVacationUsage    = "休暇申請は「休暇申請 種別 日付 理由」の形式で送信してください。"
	msgApproveUsage     = "形式: 承認 2025/09/15 山田"
	msgApproveNotFound  = "該当する休暇申請が見つかりませんでした。"
	msgUnknownAction    = "不明な操作です。"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Dispatcher は 1 件の受信イベントをエンジン操作へ振り分け、応答を
// 組み立てます。各分岐はちょうど 1 つの Reply を返し、休暇申請の分岐
// だけがワークフロー内で管理者通知を追加で発生させます。
type Dispatcher struct {
	attendance attendance.UseCase
	shifts     shift.UseCase
	vacations  vacation.UseCase
	profiles   ProfileSource
	clock      Clock
	// adminUserID が一致する送信者だけが承認コマンドを使えます。
	adminUserID string
	logger      *zap.Logger
}

// Deps は Dispatcher の依存一式です。
type Deps struct {
	Attendance  attendance.UseCase
	Shifts      shift.UseCase
	Vacations   vacation.UseCase
	Profiles    ProfileSource
	Clock       Clock
	AdminUserID string
	Logger      *zap.Logger
}

// NewDispatcher は Dispatcher を生成します。
func NewDispatcher(deps Deps) *Dispatcher {
	if deps.Clock == nil {
		deps.Clock = realClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Dispatcher{
		attendance:  deps.Attendance,
		shifts:      deps.Shifts,
		vacations:   deps.Vacations,
		profiles:    deps.Profiles,
		clock:       deps.Clock,
		adminUserID: deps.AdminUserID,
		logger:      deps.Logger,
	}
}

// HandleText はテキストメッセージ 1 件を処理して応答を返します。
func (d *Dispatcher) HandleText(ctx context.Context, ev TextEvent) Reply {
	name := d.resolveName(ctx, ev.UserID)
	text := strings.TrimSpace(ev.Text)

	switch text {
	case cmdClockIn:
		return d.clockIn(ctx, name)
	case cmdClockOut:
		return d.clockOut(ctx, name)
	case cmdSummary:
		return d.summarize(ctx, name)
	case cmdShifts:
		return d.weeklyShifts(ctx, name)
	case cmdMenu:
		return menuReply()
	}

	if strings.HasPrefix(text, triggerVacation) {
		return d.submitVacation(ctx, name, text)
	}
	if strings.HasPrefix(text, triggerApprove) && d.isAdmin(ev.UserID) {
		return d.approveVacation(ctx, text)
	}

	return Reply{Text: fmt.Sprintf("「%s」ですね！了解です🦊", ev.Text)}
}

// HandlePostback はポストバックイベント 1 件を処理して応答を返します。
func (d *Dispatcher) HandlePostback(ctx context.Context, ev PostbackEvent) Reply {
	name := d.resolveName(ctx, ev.UserID)

	switch ev.Action {
	case ActionClockIn:
		return d.clockIn(ctx, name)
	case ActionClockOut:
		return d.clockOut(ctx, name)
	case ActionSummary:
		return d.summarize(ctx, name)
	case ActionShift:
		return d.weeklyShifts(ctx, name)
	case ActionVacation:
		return Reply{Text: msgVacationUsage}
	default:
		return Reply{Text: msgUnknownAction}
	}
}

// resolveName は表示名を解決します。プロフィール取得に失敗した場合は
// 生のユーザー ID で縮退します。
func (d *Dispatcher) resolveName(ctx context.Context, userID string) string {
	if d.profiles == nil {
		return userID
	}
	name, err := d.profiles.DisplayName(ctx, userID)
	if err != nil || strings.TrimSpace(name) == "" {
		d.logger.Warn("表示名の取得に失敗したためユーザー ID を使用します",
			zap.String("user_id", userID), zap.Error(err))
		return userID
	}
	return name
}

func (d *Dispatcher) isAdmin(userID string) bool {
	return d.adminUserID != "" && userID == d.adminUserID
}

// clockIn / clockOut のストア障害はユーザーへ見せず、記録済みの文面を
// そのまま返します（suppressWriteFailure ポリシー。打刻のたびに店頭で
// エラー文言を見せない、という元運用の判断を明示的に引き継いだもの）。
func (d *Dispatcher) clockIn(ctx context.Context, name string) Reply {
	result, err := d.attendance.ClockIn(ctx, attendance.ClockInInput{Name: name})
	if err != nil {
		d.logger.Error("出勤打刻の保存に失敗しました", zap.String("name", name), zap.Error(err))
		return Reply{Text: msgClockInFallback}
	}
	return Reply{Text: fmt.Sprintf("出勤を記録しました！（%s）", result.ClockIn)}
}

func (d *Dispatcher) clockOut(ctx context.Context, name string) Reply {
	result, err := d.attendance.ClockOut(ctx, attendance.ClockOutInput{Name: name})
	switch {
	case errors.Is(err, attendance.ErrNoOpenRecord):
		return Reply{Text: msgNoOpenRecord}
	case err != nil:
		d.logger.Error("退勤打刻の保存に失敗しました", zap.String("name", name), zap.Error(err))
		return Reply{Text: msgClockOutFallback}
	}
	return Reply{Text: fmt.Sprintf("退勤を記録しました！（%s）", result.ClockOut)}
}

func (d *Dispatcher) summarize(ctx context.Context, name string) Reply {
	month := d.clock.Now()
	result, err := d.attendance.Summarize(ctx, attendance.SummarizeInput{Name: name, Month: &month})
	if err != nil {
		d.logger.Error("勤務時間の集計に失敗しました", zap.String("name", name), zap.Error(err))
		return Reply{Text: msgStoreError}
	}
	return Reply{Text: fmt.Sprintf("%sさんの今月の勤務時間は %d時間%d分 です", name, result.Hours, result.Minutes)}
}

func (d *Dispatcher) weeklyShifts(ctx context.Context, name string) Reply {
	result, err := d.shifts.WeeklyShifts(ctx, shift.WeeklyShiftsInput{Name: name})
	if err != nil {
		d.logger.Error("シフトの取得に失敗しました", zap.String("name", name), zap.Error(err))
		return Reply{Text: msgStoreError}
	}
	if len(result.Shifts) == 0 {
		return Reply{Text: msgNoShifts}
	}

	lines := make([]string, 0, len(result.Shifts))
	for _, rec := range result.Shifts {
		lines = append(lines, fmt.Sprintf("%s: %s〜%s", rec.Date, rec.StartTime, rec.EndTime))
	}
	return Reply{Text: strings.Join(lines, "\n")}
}

func (d *Dispatcher) submitVacation(ctx context.Context, name, text string) Reply {
	result, err := d.vacations.Submit(ctx, vacation.SubmitInput{Name: name, RawCommand: text})
	switch {
	case errors.Is(err, vacation.ErrMalformedRequest):
		return Reply{Text: msgVacationFormat}
	case err != nil:
		d.logger.Error("休暇申請の保存に失敗しました", zap.String("name", name), zap.Error(err))
		return Reply{Text: msgStoreError}
	}
	return Reply{Text: fmt.Sprintf("休暇申請を受け付けました（%s / %s）", result.Date, result.Kind)}
}

// approveVacation は管理者専用コマンド「承認 <日付> <名前>」を処理し
// ます。
func (d *Dispatcher) approveVacation(ctx context.Context, text string) Reply {
	tokens := strings.Fields(text)
	if len(tokens) < 3 {
		return Reply{Text: msgApproveUsage}
	}

	result, err := d.vacations.Approve(ctx, vacation.ApproveInput{Date: tokens[1], Name: tokens[2]})
	switch {
	case errors.Is(err, vacation.ErrRequestNotFound):
		return Reply{Text: msgApproveNotFound}
	case err != nil:
		d.logger.Error("休暇申請の承認に失敗しました", zap.Error(err))
		return Reply{Text: msgStoreError}
	}
	return Reply{Text: fmt.Sprintf("%s の %s さんの休暇申請を承認しました。", result.Date, result.Name)}
}

// menuReply はボタンメニューを返します。LINE のボタンテンプレートは
// アクション 4 件までのため、集計はテキストコマンドのみに残して
// います。
func menuReply() Reply {
	return Reply{Menu: &Menu{
		Title:  "勤怠メニュー",
		Prompt: "操作を選んでください",
		Actions: []MenuAction{
			{Label: cmdClockIn, Data: ActionClockIn},
			{Label: cmdClockOut, Data: ActionClockOut},
			{Label: cmdShifts, Data: ActionShift},
			{Label: triggerVacation, Data: ActionVacation},
		},
	}}
}
