package attendance

import "context"

// Repository は勤怠レコード永続化の抽象です。どの行を閉じるかの判断は
// サービス側の責務で、実装は行番号で指定されたセル書き込みだけを行い
// ます。
type Repository interface {
	Append(ctx context.Context, rec Record) error
	List(ctx context.Context) ([]Record, error)
	// MarkClockedOut は rowIndex 行に退勤時刻を書き込み、状態を
	// 退勤へ更新します。
	MarkClockedOut(ctx context.Context, rowIndex int, clockOut string) error
}
