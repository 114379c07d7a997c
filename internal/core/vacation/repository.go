package vacation

import "context"

// Repository は休暇申請永続化の抽象です。
type Repository interface {
	Append(ctx context.Context, req Request) error
	List(ctx context.Context) ([]Request, error)
	// MarkApproved は rowIndex 行の状態を承認済へ更新します。
	MarkApproved(ctx context.Context, rowIndex int) error
}

// Notifier は管理者への通知の抽象です。通知は常にベストエフォートで、
// 失敗しても申請処理は失敗させません。
type Notifier interface {
	NotifyAdmin(ctx context.Context, text string) error
}
