package attendance

// Status は勤怠レコードの状態を表します。
type Status string

const (
	StatusClockedIn  Status = "出勤"
	StatusClockedOut Status = "退勤"
)

// Record は勤怠テーブルの 1 行です。
type Record struct {
	// Row はストア上の行番号です（ヘッダー行が 1、未追記の場合は 0）。
	Row      int
	Date     string
	Name     string
	ClockIn  string
	ClockOut string
	Status   Status
}

// Open はこのレコードが未退勤（出勤時刻あり・退勤時刻なし）かどうかを
// 返します。
func (r Record) Open() bool {
	return r.ClockIn != "" && r.ClockOut == ""
}
