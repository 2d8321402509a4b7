package role

import "context"

// Repository は役職の参照を行うインターフェースです。
type Repository interface {
	// List は全役職を階層レベル・役職名の昇順で返します。
	List(ctx context.Context) ([]*Role, error)
}
