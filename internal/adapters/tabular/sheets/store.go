// Package sheets は Google スプレッドシートを背後に持つ tabular.Store の
// 実装です。ワークシート名をテーブル名として扱い、1 行目をヘッダーと
// みなします。
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ogurasousui/kintai-line-bot/internal/core/tabular"
)

// Store は Sheets API を利用した tabular.Store の実装です。
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewStore はサービスアカウントの認証情報 JSON からクライアントを構築
// します。
func NewStore(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*Store, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// AppendRow はワークシート末尾に 1 行追記します。
func (s *Store) AppendRow(ctx context.Context, table string, values []string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}

	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, table, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append row to %s: %w", table, err)
	}
	return nil
}

// ReadAllRows はワークシートの全データ行を返します。1 行目はヘッダーと
// して消費し、行番号はシート上の番号（ヘッダー = 1）を保ちます。
func (s *Store) ReadAllRows(ctx context.Context, table string) ([]tabular.Row, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, table).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read rows from %s: %w", table, err)
	}

	if len(resp.Values) == 0 {
		return nil, nil
	}

	headers := stringCells(resp.Values[0])
	rows := make([]tabular.Row, 0, len(resp.Values)-1)
	for i, raw := range resp.Values[1:] {
		values := stringCells(raw)
		cells := make(map[string]string, len(headers))
		for c, header := range headers {
			if c < len(values) {
				cells[header] = values[c]
			}
		}
		rows = append(rows, tabular.Row{Index: i + 2, Cells: cells})
	}
	return rows, nil
}

// UpdateCell は 1 セルを上書きします。
func (s *Store) UpdateCell(ctx context.Context, table string, rowIndex, columnIndex int, value string) error {
	if rowIndex < 1 || columnIndex < 1 {
		return fmt.Errorf("sheets: invalid cell address (%d, %d)", rowIndex, columnIndex)
	}

	cellRange := fmt.Sprintf("%s!%s%d", table, columnLetter(columnIndex), rowIndex)
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, cellRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: update cell %s: %w", cellRange, err)
	}
	return nil
}

func stringCells(raw []interface{}) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = fmt.Sprint(v)
	}
	return out
}

// columnLetter は 1 始まりの列番号を A1 表記の列名へ変換します。
func columnLetter(column int) string {
	letters := ""
	for column > 0 {
		column--
		letters = string(rune('A'+column%26)) + letters
		column /= 26
	}
	return letters
}
