package role

import (
	"context"
	"errors"
	"testing"
)

type fakeRoleRepo struct {
	roles []*Role
	err   error
}

func (r *fakeRoleRepo) List(context.Context) ([]*Role, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.roles, nil
}

type countingTx struct {
	calls int
}

func (c *countingTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	c.calls++
	return fn(ctx)
}

func TestService_ListRoles(t *testing.T) {
	t.Parallel()

	repo := &fakeRoleRepo{roles: []*Role{
		{ID: "r-1", Title: "Software Engineer", Level: "Junior", HierarchyLevel: 1},
		{ID: "r-2", Title: "Senior Software Engineer", Level: "Senior", HierarchyLevel: 3},
	}}
	tx := &countingTx{}
	svc := NewService(repo, tx)

	roles, err := svc.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("ListRoles returned error: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}
	if roles[0].Title != "Software Engineer" || roles[1].Level != "Senior" {
		t.Fatalf("unexpected roles: %+v %+v", roles[0], roles[1])
	}
	if tx.calls != 1 {
		t.Fatalf("expected read-only transaction to be used once, got %d", tx.calls)
	}
}

func TestService_ListRoles_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeRoleRepo{}, nil)

	roles, err := svc.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("ListRoles returned error: %v", err)
	}
	if roles == nil || len(roles) != 0 {
		t.Fatalf("expected empty slice, got %#v", roles)
	}
}

func TestService_ListRoles_PropagatesError(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("connection reset")
	svc := NewService(&fakeRoleRepo{err: repoErr}, nil)

	if _, err := svc.ListRoles(context.Background()); !errors.Is(err, repoErr) {
		t.Fatalf("expected %v, got %v", repoErr, err)
	}
}
