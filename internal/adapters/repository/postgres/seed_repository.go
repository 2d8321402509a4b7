package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/role"
	pgdb "github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/db/postgres"
)

// Copier は COPY による一括投入を行える接続です。pgxpool.Pool と pgx.Tx が満たします。
type Copier interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// SeedPool はシード投入に必要な接続です。
type SeedPool interface {
	pgdb.Queryer
	Copier
}

var (
	roleCopyColumns          = []string{"id", "title", "level", "hierarchy_level", "description"}
	employeeCopyColumns      = []string{"id", "name", "address", "phone_number", "email", "status", "date_of_joining", "date_of_exit"}
	careerHistoryCopyColumns = []string{"id", "employee_id", "role_id", "manager_id", "department", "salary", "start_date", "end_date", "notes"}
)

// SeedRepository は初期データ投入用の永続化実装です。
type SeedRepository struct {
	pool SeedPool
}

// NewSeedRepository は SeedRepository を生成します。
func NewSeedRepository(pool SeedPool) *SeedRepository {
	return &SeedRepository{pool: pool}
}

// CountRoles は役職の件数を返します。
func (r *SeedRepository) CountRoles(ctx context.Context) (int, error) {
	return r.count(ctx, "roles")
}

// CountEmployees は社員の件数を返します。
func (r *SeedRepository) CountEmployees(ctx context.Context) (int, error) {
	return r.count(ctx, "employees")
}

// CountCareerHistories は職歴の件数を返します。
func (r *SeedRepository) CountCareerHistories(ctx context.Context) (int, error) {
	return r.count(ctx, "career_histories")
}

func (r *SeedRepository) count(ctx context.Context, table string) (int, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var total int
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM `+pgx.Identifier{table}.Sanitize()).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres: count %s: %w", table, err)
	}
	return total, nil
}

// RoleIDsByTitle は役職名から ID への対応表を返します。
func (r *SeedRepository) RoleIDsByTitle(ctx context.Context) (map[string]string, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT title, id FROM roles`)
	if err != nil {
		return nil, fmt.Errorf("postgres: load role ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]string)
	for rows.Next() {
		var title, id string
		if err := rows.Scan(&title, &id); err != nil {
			return nil, fmt.Errorf("postgres: scan role id: %w", err)
		}
		ids[title] = id
	}
	return ids, rows.Err()
}

// EmployeeIDsByEmail はメールアドレスから社員 ID への対応表を返します。
// 同じメールアドレスが複数ある場合は最も早く入社した社員を採用します。
func (r *SeedRepository) EmployeeIDsByEmail(ctx context.Context) (map[string]string, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT email, id FROM employees ORDER BY date_of_joining ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("postgres: load employee ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]string)
	for rows.Next() {
		var email, id string
		if err := rows.Scan(&email, &id); err != nil {
			return nil, fmt.Errorf("postgres: scan employee id: %w", err)
		}
		if _, ok := ids[email]; !ok {
			ids[email] = id
		}
	}
	return ids, rows.Err()
}

// InsertRoles は役職を一括投入します。
func (r *SeedRepository) InsertRoles(ctx context.Context, roles []*role.Role) (int64, error) {
	rows := make([][]any, 0, len(roles))
	for _, ro := range roles {
		id, err := uuid.Parse(ro.ID)
		if err != nil {
			return 0, fmt.Errorf("postgres: role %q: %w", ro.Title, err)
		}
		rows = append(rows, []any{id, ro.Title, ro.Level, ro.HierarchyLevel, ro.Description})
	}

	n, err := r.copier(ctx).CopyFrom(ctx, pgx.Identifier{"roles"}, roleCopyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, translateSeedPgError(err)
	}
	return n, nil
}

// InsertEmployees は社員を一括投入します。職歴は InsertCareerHistories で投入します。
func (r *SeedRepository) InsertEmployees(ctx context.Context, employees []*employee.Employee) (int64, error) {
	rows := make([][]any, 0, len(employees))
	for _, e := range employees {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return 0, fmt.Errorf("postgres: employee %q: %w", e.Email, err)
		}
		rows = append(rows, []any{id, e.Name, e.Address, e.PhoneNumber, e.Email, string(e.Status), e.DateOfJoining, e.DateOfExit})
	}

	n, err := r.copier(ctx).CopyFrom(ctx, pgx.Identifier{"employees"}, employeeCopyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, translateSeedPgError(err)
	}
	return n, nil
}

// InsertCareerHistories は職歴を一括投入します。
func (r *SeedRepository) InsertCareerHistories(ctx context.Context, histories []*employee.CareerHistory) (int64, error) {
	rows := make([][]any, 0, len(histories))
	for _, h := range histories {
		row, err := careerHistoryCopyRow(h)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	n, err := r.copier(ctx).CopyFrom(ctx, pgx.Identifier{"career_histories"}, careerHistoryCopyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, translateSeedPgError(err)
	}
	return n, nil
}

func careerHistoryCopyRow(h *employee.CareerHistory) ([]any, error) {
	id, err := uuid.Parse(h.ID)
	if err != nil {
		return nil, fmt.Errorf("postgres: career history id: %w", err)
	}
	employeeID, err := uuid.Parse(h.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("postgres: career history employee id: %w", err)
	}
	roleID, err := uuid.Parse(h.Role.ID)
	if err != nil {
		return nil, fmt.Errorf("postgres: career history role id: %w", err)
	}

	var managerID any
	if h.Manager != nil {
		parsed, err := uuid.Parse(h.Manager.ID)
		if err != nil {
			return nil, fmt.Errorf("postgres: career history manager id: %w", err)
		}
		managerID = parsed
	}

	return []any{id, employeeID, roleID, managerID, h.Department, h.Salary, h.StartDate, h.EndDate, h.Notes}, nil
}

func (r *SeedRepository) copier(ctx context.Context) Copier {
	if c, ok := pgdb.QueryerFromContext(ctx, r.pool).(Copier); ok {
		return c
	}
	return r.pool
}

func translateSeedPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if pgErr.ConstraintName == "roles_title_key" {
				return role.ErrTitleAlreadyExists
			}
		case foreignKeyViolationCode:
			if pgErr.ConstraintName == "career_histories_role_id_fkey" {
				return role.ErrRoleNotFound
			}
			return employee.ErrEmployeeNotFound
		}
	}
	return err
}
