package shift

// Record はシフトテーブルの 1 行です。このコアからは参照専用で、
// 追記・更新は行いません。
type Record struct {
	Name      string
	Date      string
	StartTime string
	EndTime   string
}
