package vacation

// Status は休暇申請の状態を表します。
type Status string

const (
	StatusPending  Status = "申請中"
	StatusApproved Status = "承認済"
)

// Request は休暇申請テーブルの 1 行です。
type Request struct {
	// Row はストア上の行番号です（ヘッダー行が 1、未追記の場合は 0）。
	Row    int
	Date   string
	Name   string
	Kind   string
	Reason string
	Status Status
}
