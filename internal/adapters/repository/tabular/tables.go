// Package tabularrepo は tabular.Store の上に型付きリポジトリを実装
// します。シート名と列順は元の運用スプレッドシートに揃えてあり、追記は
// 列順、参照はヘッダー名で行います。
package tabularrepo

// テーブル（ワークシート）名。
const (
	TableAttendance = "勤怠"
	TableShifts     = "シフト"
	TableVacations  = "休暇申請"
)

// 勤怠テーブルの列。5 列目（備考）は未使用ですが、既存シートとの
// 互換のため追記時に空文字で埋めます。
const (
	attendanceColDate     = "日付"
	attendanceColName     = "名前"
	attendanceColClockIn  = "出勤時間"
	attendanceColClockOut = "退勤時間"
	attendanceColStatus   = "状態"

	attendanceClockOutIndex = 4
	attendanceStatusIndex   = 6
)

// シフトテーブルの列。
const (
	shiftColName  = "名前"
	shiftColDate  = "日付"
	shiftColStart = "開始時間"
	shiftColEnd   = "終了時間"
)

// 休暇申請テーブルの列。
const (
	vacationColDate   = "日付"
	vacationColName   = "名前"
	vacationColKind   = "種別"
	vacationColReason = "理由"
	vacationColStatus = "状態"

	vacationStatusIndex = 5
)
