package employee

import "context"

// Repository は社員永続化の抽象です。
// List / FindByID は職歴・役職・上長を解決済みの集約を返します。
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Employee, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Stage(ctx context.Context, employee *Employee) (StagedWrite, error)
}

// StagedWrite はコミット待ちの書き込みです。
// Commit されるまで他のセッションからは参照できません。
type StagedWrite interface {
	Commit(ctx context.Context) (int64, error)
	Discard(ctx context.Context) error
}

// SortOrder は入社日の並び順です。
type SortOrder int

const (
	SortJoiningDateAsc SortOrder = iota
	SortJoiningDateDesc
)

// ListFilter は一覧取得用フィルタです。
type ListFilter struct {
	Status     *Status
	SearchTerm string
	Order      SortOrder
	Limit      int
	Offset     int
}
