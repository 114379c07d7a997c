package tabularrepo

import (
	"context"
	"fmt"

	"github.com/ogurasousui/kintai-line-bot/internal/core/tabular"
	"github.com/ogurasousui/kintai-line-bot/internal/core/vacation"
)

// VacationRepository は tabular.Store を利用した休暇申請永続化の実装
// です。
type VacationRepository struct {
	store tabular.Store
}

// NewVacationRepository は VacationRepository を生成します。
func NewVacationRepository(store tabular.Store) *VacationRepository {
	return &VacationRepository{store: store}
}

// Append は休暇申請行を列順どおりに追記します。
func (r *VacationRepository) Append(ctx context.Context, req vacation.Request) error {
	values := []string{req.Date, req.Name, req.Kind, req.Reason, string(req.Status)}
	if err := r.store.AppendRow(ctx, TableVacations, values); err != nil {
		return fmt.Errorf("tabularrepo: append vacation row: %w", err)
	}
	return nil
}

// List は休暇申請行を全件、シート上の順序で返します。
func (r *VacationRepository) List(ctx context.Context) ([]vacation.Request, error) {
	rows, err := r.store.ReadAllRows(ctx, TableVacations)
	if err != nil {
		return nil, fmt.Errorf("tabularrepo: read vacation rows: %w", err)
	}

	requests := make([]vacation.Request, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, vacation.Request{
			Row:    row.Index,
			Date:   row.Get(vacationColDate),
			Name:   row.Get(vacationColName),
			Kind:   row.Get(vacationColKind),
			Reason: row.Get(vacationColReason),
			Status: vacation.Status(row.Get(vacationColStatus)),
		})
	}
	return requests, nil
}

// MarkApproved は状態セルを承認済へ更新します。
func (r *VacationRepository) MarkApproved(ctx context.Context, rowIndex int) error {
	if err := r.store.UpdateCell(ctx, TableVacations, rowIndex, vacationStatusIndex, string(vacation.StatusApproved)); err != nil {
		return fmt.Errorf("tabularrepo: update vacation status cell: %w", err)
	}
	return nil
}
