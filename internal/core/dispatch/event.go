package dispatch

import "context"

// TextEvent は署名検証・デコード済みのテキストメッセージです。
type TextEvent struct {
	UserID     string
	Text       string
	ReplyToken string
}

// PostbackEvent はボタン押下で届く構造化アクションです。
type PostbackEvent struct {
	UserID     string
	Action     string
	ReplyToken string
}

// ポストバックのアクションコード。テキストコマンドと 1:1 で同じ操作へ
// 割り付けます（vacation のみ案内文の返信）。
const (
	ActionClockIn  = "clock_in"
	ActionClockOut = "clock_out"
	ActionSummary  = "summary"
	ActionVacation = "vacation"
	ActionShift    = "shift"
)

// ProfileSource は利用者の表示名の解決を抽象化します。失敗した場合、
// 呼び出し側は生のユーザー ID へ切り替えます（リトライもブロックも
// しません）。
type ProfileSource interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}
