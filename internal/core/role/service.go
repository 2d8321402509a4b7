package role

import (
	"context"
	"fmt"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase は役職ユースケースの公開インターフェースです。
type UseCase interface {
	ListRoles(ctx context.Context) ([]*Role, error)
}

// Service は役職に関するユースケースをまとめます。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// ListRoles は全役職を返します。
func (s *Service) ListRoles(ctx context.Context) ([]*Role, error) {
	var roles []*Role
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx)
		if err != nil {
			return fmt.Errorf("list roles: %w", err)
		}
		roles = found
		return nil
	}); err != nil {
		return nil, err
	}

	if roles == nil {
		roles = []*Role{}
	}
	return roles, nil
}
