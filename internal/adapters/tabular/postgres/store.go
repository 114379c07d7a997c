// Package postgres はシート互換の行ストアを PostgreSQL 上に実装します。
// sheet_rows テーブルにシート名・行番号・セル配列を保持し、行番号 1 を
// ヘッダー行として扱うことでスプレッドシート実装と同じ契約を満たし
// ます。セルフホスト構成で Google Sheets の代わりに差し替えるための
// バックエンドです。
package postgres

import (
	"context"
	"fmt"

	"github.com/ogurasousui/kintai-line-bot/internal/core/tabular"
	pgdb "github.com/ogurasousui/kintai-line-bot/internal/platform/db/postgres"
)

// Store は pgx を利用した tabular.Store の実装です。
type Store struct {
	pool pgdb.Queryer
}

// NewStore は Store を生成します。
func NewStore(pool pgdb.Queryer) *Store {
	return &Store{pool: pool}
}

// AppendRow はシート内の最大行番号の次の行として 1 行追記します。
// 行番号の採番と挿入は単一文で行います。トランザクションは張らず、
// 同時追記の競合はシート運用と同じく後勝ちです。
func (s *Store) AppendRow(ctx context.Context, table string, values []string) error {
	_, err := s.pool.Exec(ctx, `
        INSERT INTO sheet_rows (sheet, row_no, cells)
        VALUES ($1, (SELECT COALESCE(MAX(row_no), 0) + 1 FROM sheet_rows WHERE sheet = $1), $2)
    `, table, values)
	if err != nil {
		return fmt.Errorf("postgres: append row to %s: %w", table, err)
	}
	return nil
}

// ReadAllRows は行番号順に全行を読み、行番号 1 をヘッダーとして消費
// します。ヘッダー行が無いシートは空として扱います。
func (s *Store) ReadAllRows(ctx context.Context, table string) ([]tabular.Row, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT row_no, cells
          FROM sheet_rows
         WHERE sheet = $1
         ORDER BY row_no
    `, table)
	if err != nil {
		return nil, fmt.Errorf("postgres: read rows from %s: %w", table, err)
	}
	defer rows.Close()

	var headers []string
	var out []tabular.Row
	for rows.Next() {
		var rowNo int
		var cells []string
		if err := rows.Scan(&rowNo, &cells); err != nil {
			return nil, fmt.Errorf("postgres: scan row from %s: %w", table, err)
		}

		if rowNo == 1 {
			headers = cells
			continue
		}
		if headers == nil {
			continue
		}

		keyed := make(map[string]string, len(headers))
		for c, header := range headers {
			if c < len(cells) {
				keyed[header] = cells[c]
			}
		}
		out = append(out, tabular.Row{Index: rowNo, Cells: keyed})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate rows from %s: %w", table, err)
	}

	return out, nil
}

// UpdateCell は 1 セルを上書きします。対象行が存在しない場合はエラー
// です。
func (s *Store) UpdateCell(ctx context.Context, table string, rowIndex, columnIndex int, value string) error {
	if rowIndex < 1 || columnIndex < 1 {
		return fmt.Errorf("postgres: invalid cell address (%d, %d)", rowIndex, columnIndex)
	}

	tag, err := s.pool.Exec(ctx, `
        UPDATE sheet_rows
           SET cells[$3] = $4
         WHERE sheet = $1 AND row_no = $2
    `, table, rowIndex, columnIndex, value)
	if err != nil {
		return fmt.Errorf("postgres: update cell (%d, %d) in %s: %w", rowIndex, columnIndex, table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres: row %d not found in %s", rowIndex, table)
	}
	return nil
}
