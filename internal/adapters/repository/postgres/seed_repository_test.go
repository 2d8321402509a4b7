package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/role"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

const (
	seedEmployeeID = "0b0f5c1e-9a52-4a3e-8f8c-2b5d1d1a7e01"
	seedManagerID  = "0b0f5c1e-9a52-4a3e-8f8c-2b5d1d1a7e02"
	seedRoleID     = "5a6c2f0d-1b3e-4c7a-9d8e-0f1a2b3c4d5e"
)

func TestSeedRepository_Counts(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewSeedRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "roles"`)).
		WithArgs().
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "employees"`)).
		WithArgs().
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "career_histories"`)).
		WithArgs().
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

	ctx := context.Background()
	if n, err := repo.CountRoles(ctx); err != nil || n != 7 {
		t.Fatalf("CountRoles = %d, %v", n, err)
	}
	if n, err := repo.CountEmployees(ctx); err != nil || n != 0 {
		t.Fatalf("CountEmployees = %d, %v", n, err)
	}
	if n, err := repo.CountCareerHistories(ctx); err != nil || n != 12 {
		t.Fatalf("CountCareerHistories = %d, %v", n, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedRepository_EmployeeIDsByEmail_KeepsEarliest(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT email, id FROM employees`)).
		WithArgs().
		WillReturnRows(pgxmock.NewRows([]string{"email", "id"}).
			AddRow("shared@example.com", "first").
			AddRow("shared@example.com", "second").
			AddRow("solo@example.com", "solo"))

	ids, err := NewSeedRepository(mock).EmployeeIDsByEmail(context.Background())
	if err != nil {
		t.Fatalf("EmployeeIDsByEmail returned error: %v", err)
	}
	if ids["shared@example.com"] != "first" || ids["solo@example.com"] != "solo" {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestSeedRepository_RoleIDsByTitle(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT title, id FROM roles`)).
		WithArgs().
		WillReturnRows(pgxmock.NewRows([]string{"title", "id"}).AddRow("Engineer", seedRoleID))

	ids, err := NewSeedRepository(mock).RoleIDsByTitle(context.Background())
	if err != nil {
		t.Fatalf("RoleIDsByTitle returned error: %v", err)
	}
	if ids["Engineer"] != seedRoleID {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestSeedRepository_InsertRoles(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"roles"}, roleCopyColumns).WillReturnResult(1)

	n, err := NewSeedRepository(mock).InsertRoles(context.Background(), []*role.Role{
		{ID: seedRoleID, Title: "Engineer", Level: "Mid", HierarchyLevel: 2},
	})
	if err != nil {
		t.Fatalf("InsertRoles returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedRepository_InsertRoles_DuplicateTitle(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"roles"}, roleCopyColumns).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "roles_title_key"})

	_, err = NewSeedRepository(mock).InsertRoles(context.Background(), []*role.Role{
		{ID: seedRoleID, Title: "Engineer", Level: "Mid"},
	})
	if !errors.Is(err, role.ErrTitleAlreadyExists) {
		t.Fatalf("expected ErrTitleAlreadyExists, got %v", err)
	}
}

func TestSeedRepository_InsertEmployees_InvalidID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	_, err = NewSeedRepository(mock).InsertEmployees(context.Background(), []*employee.Employee{
		{ID: "not-a-uuid", Name: "Broken", Email: "broken@example.com"},
	})
	if err == nil {
		t.Fatal("expected error for non-UUID id")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database access: %v", err)
	}
}

func TestSeedRepository_InsertCareerHistories(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"career_histories"}, careerHistoryCopyColumns).WillReturnResult(2)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	n, err := NewSeedRepository(mock).InsertCareerHistories(context.Background(), []*employee.CareerHistory{
		{
			ID:         "9f1c7a34-6d2b-4a8e-b1c3-2e4f5a6b7c80",
			EmployeeID: seedEmployeeID,
			Role:       employee.RoleSnapshot{ID: seedRoleID},
			Manager:    &employee.ManagerRef{ID: seedManagerID},
			Department: "Engineering",
			Salary:     101000,
			StartDate:  start,
		},
		{
			ID:         "9f1c7a34-6d2b-4a8e-b1c3-2e4f5a6b7c81",
			EmployeeID: seedManagerID,
			Role:       employee.RoleSnapshot{ID: seedRoleID},
			Department: "Engineering",
			Salary:     180000,
			StartDate:  start,
		},
	})
	if err != nil {
		t.Fatalf("InsertCareerHistories returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTranslateSeedPgError(t *testing.T) {
	t.Parallel()

	roleFK := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "career_histories_role_id_fkey"}
	if !errors.Is(translateSeedPgError(roleFK), role.ErrRoleNotFound) {
		t.Fatalf("expected role fk to map to ErrRoleNotFound")
	}

	managerFK := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "career_histories_manager_id_fkey"}
	if !errors.Is(translateSeedPgError(managerFK), employee.ErrEmployeeNotFound) {
		t.Fatalf("expected manager fk to map to ErrEmployeeNotFound")
	}

	other := errors.New("other")
	if translateSeedPgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}
}
