package tabular

import "context"

// Store はヘッダー付きテーブルへの行指向アクセスの抽象です。
// 実装にはスプレッドシートや RDB を想定し、行番号はヘッダー行を 1 と
// 数える 1 始まり（先頭データ行は 2）で扱います。
type Store interface {
	// AppendRow はテーブル末尾に 1 行追加します。values はヘッダーの
	// 列順に並べた値です。
	AppendRow(ctx context.Context, table string, values []string) error
	// ReadAllRows はデータ行をシート上の順序で全件返します。
	// ヘッダー行自体は返しません。
	ReadAllRows(ctx context.Context, table string) ([]Row, error)
	// UpdateCell は rowIndex 行 columnIndex 列（いずれも 1 始まり）の
	// セルを上書きします。
	UpdateCell(ctx context.Context, table string, rowIndex, columnIndex int, value string) error
}

// Row はヘッダー名をキーとする 1 データ行です。
type Row struct {
	// Index はシート上の行番号です（ヘッダー行が 1）。
	Index int
	Cells map[string]string
}

// Get は列名に対応するセル値を返します。列が無ければ空文字列です。
func (r Row) Get(column string) string {
	return r.Cells[column]
}
