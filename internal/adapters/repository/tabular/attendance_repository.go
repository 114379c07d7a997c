package tabularrepo

import (
	"context"
	"fmt"

	"github.com/ogurasousui/kintai-line-bot/internal/core/attendance"
	"github.com/ogurasousui/kintai-line-bot/internal/core/tabular"
)

// AttendanceRepository は tabular.Store を利用した勤怠永続化の実装です。
type AttendanceRepository struct {
	store tabular.Store
}

// NewAttendanceRepository は AttendanceRepository を生成します。
func NewAttendanceRepository(store tabular.Store) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

// Append は勤怠行を列順どおりに追記します。
func (r *AttendanceRepository) Append(ctx context.Context, rec attendance.Record) error {
	values := []string{rec.Date, rec.Name, rec.ClockIn, rec.ClockOut, "", string(rec.Status)}
	if err := r.store.AppendRow(ctx, TableAttendance, values); err != nil {
		return fmt.Errorf("tabularrepo: append attendance row: %w", err)
	}
	return nil
}

// List は勤怠行を全件、シート上の順序で返します。
func (r *AttendanceRepository) List(ctx context.Context) ([]attendance.Record, error) {
	rows, err := r.store.ReadAllRows(ctx, TableAttendance)
	if err != nil {
		return nil, fmt.Errorf("tabularrepo: read attendance rows: %w", err)
	}

	records := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, attendance.Record{
			Row:      row.Index,
			Date:     row.Get(attendanceColDate),
			Name:     row.Get(attendanceColName),
			ClockIn:  row.Get(attendanceColClockIn),
			ClockOut: row.Get(attendanceColClockOut),
			Status:   attendance.Status(row.Get(attendanceColStatus)),
		})
	}
	return records, nil
}

// MarkClockedOut は退勤時刻と状態の 2 セルを更新します。
func (r *AttendanceRepository) MarkClockedOut(ctx context.Context, rowIndex int, clockOut string) error {
	if err := r.store.UpdateCell(ctx, TableAttendance, rowIndex, attendanceClockOutIndex, clockOut); err != nil {
		return fmt.Errorf("tabularrepo: update clock-out cell: %w", err)
	}
	if err := r.store.UpdateCell(ctx, TableAttendance, rowIndex, attendanceStatusIndex, string(attendance.StatusClockedOut)); err != nil {
		return fmt.Errorf("tabularrepo: update status cell: %w", err)
	}
	return nil
}
