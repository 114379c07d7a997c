package tabularrepo

import (
	"context"
	"fmt"

	"github.com/ogurasousui/kintai-line-bot/internal/core/shift"
	"github.com/ogurasousui/kintai-line-bot/internal/core/tabular"
)

// ShiftRepository は tabular.Store を利用したシフト参照の実装です。
// このコアからシフトテーブルへの書き込みは行いません。
type ShiftRepository struct {
	store tabular.Store
}

// NewShiftRepository は ShiftRepository を生成します。
func NewShiftRepository(store tabular.Store) *ShiftRepository {
	return &ShiftRepository{store: store}
}

// List はシフト行を全件返します。
func (r *ShiftRepository) List(ctx context.Context) ([]shift.Record, error) {
	rows, err := r.store.ReadAllRows(ctx, TableShifts)
	if err != nil {
		return nil, fmt.Errorf("tabularrepo: read shift rows: %w", err)
	}

	records := make([]shift.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, shift.Record{
			Name:      row.Get(shiftColName),
			Date:      row.Get(shiftColDate),
			StartTime: row.Get(shiftColStart),
			EndTime:   row.Get(shiftColEnd),
		})
	}
	return records, nil
}
