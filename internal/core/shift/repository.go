package shift

import "context"

// Repository はシフト参照の抽象です。
type Repository interface {
	List(ctx context.Context) ([]Record, error)
}
