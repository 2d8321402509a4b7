package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
	pgdb "github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/db/postgres"
)

const (
	uniqueViolationCode       = "23505"
	foreignKeyViolationCode   = "23503"
	invalidTextRepresentation = "22P02"
)

const employeeColumns = `e.id,
               e.name,
               e.address,
               e.phone_number,
               e.email,
               e.status,
               e.date_of_joining,
               e.date_of_exit`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Pool
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// List は条件に一致する社員のページを職歴付きで取得します。
func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListFilter) ([]*employee.Employee, error) {
	whereClause, args := employeeWhereClause(filter)

	direction := "ASC"
	if filter.Order == employee.SortJoiningDateDesc {
		direction = "DESC"
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Limit)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	query := `
        SELECT ` + employeeColumns + `
          FROM employees e` + whereClause + `
         ORDER BY e.date_of_joining ` + direction + `, e.id ` + direction + `
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0, filter.Limit)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	rows.Close()

	if err := r.attachCareerHistories(ctx, exec, employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// Count は条件に一致する社員の総件数を返します。ページングは無視されます。
func (r *EmployeeRepository) Count(ctx context.Context, filter employee.ListFilter) (int, error) {
	whereClause, args := employeeWhereClause(filter)

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var total int
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM employees e`+whereClause, args...).Scan(&total); err != nil {
		return 0, translateEmployeePgError(err)
	}
	return total, nil
}

// FindByID は ID で社員を職歴付きで取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	// uuid 以外を渡すと 22P02 で読み取りトランザクション全体が中断されるため、問い合わせ前に弾く
	if err := uuid.Validate(id); err != nil {
		return nil, employee.ErrEmployeeNotFound
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees e
         WHERE e.id = $1
         LIMIT 1
    `, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}

	if err := r.attachCareerHistories(ctx, exec, []*employee.Employee{found}); err != nil {
		return nil, err
	}
	return found, nil
}

// Stage は専用トランザクション内で社員を INSERT し、コミット待ちの書き込みを返します。
func (r *EmployeeRepository) Stage(ctx context.Context, e *employee.Employee) (employee.StagedWrite, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadWrite})
	if err != nil {
		return nil, fmt.Errorf("postgres: begin tx: %w", err)
	}

	tag, err := tx.Exec(ctx, `
        INSERT INTO employees (id, name, address, phone_number, email, status, date_of_joining, date_of_exit)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `,
		e.ID,
		e.Name,
		e.Address,
		e.PhoneNumber,
		e.Email,
		string(e.Status),
		e.DateOfJoining,
		e.DateOfExit,
	)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return nil, errors.Join(translateEmployeePgError(err), fmt.Errorf("postgres: rollback: %w", rbErr))
		}
		return nil, translateEmployeePgError(err)
	}

	return &stagedEmployee{tx: tx, affected: tag.RowsAffected()}, nil
}

type stagedEmployee struct {
	tx       pgx.Tx
	affected int64
}

func (s *stagedEmployee) Commit(ctx context.Context) (int64, error) {
	if err := s.tx.Commit(ctx); err != nil {
		if rbErr := s.tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return 0, errors.Join(fmt.Errorf("postgres: commit: %w", err), fmt.Errorf("postgres: rollback after commit failure: %w", rbErr))
		}
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}
	return s.affected, nil
}

func (s *stagedEmployee) Discard(ctx context.Context) error {
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("postgres: rollback: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) attachCareerHistories(ctx context.Context, exec pgdb.Queryer, employees []*employee.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	ids := make([]string, 0, len(employees))
	byID := make(map[string]*employee.Employee, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
		byID[e.ID] = e
	}

	rows, err := exec.Query(ctx, `
        SELECT ch.id,
               ch.employee_id,
               r.id,
               r.title,
               r.level,
               m.id,
               m.name,
               ch.department,
               ch.salary,
               ch.start_date,
               ch.end_date,
               ch.notes
          FROM career_histories ch
          JOIN roles r ON r.id = ch.role_id
          LEFT JOIN employees m ON m.id = ch.manager_id
         WHERE ch.employee_id = ANY($1::uuid[])
         ORDER BY ch.employee_id, ch.start_date DESC, ch.id
    `, ids)
	if err != nil {
		return fmt.Errorf("postgres: load career histories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		h, err := scanCareerHistory(rows)
		if err != nil {
			return fmt.Errorf("postgres: scan career history: %w", err)
		}
		if owner, ok := byID[h.EmployeeID]; ok {
			owner.CareerHistories = append(owner.CareerHistories, h)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("postgres: load career histories: %w", err)
	}
	return nil
}

func employeeWhereClause(filter employee.ListFilter) (string, []any) {
	args := make([]any, 0, 4)
	conditions := make([]string, 0, 2)

	if filter.Status != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "e.status = "+placeholder)
		args = append(args, string(*filter.Status))
	}

	if strings.TrimSpace(filter.SearchTerm) != "" {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "(e.name ILIKE "+placeholder+` ESCAPE '\'`+
			" OR e.email ILIKE "+placeholder+` ESCAPE '\'`+
			" OR e.phone_number ILIKE "+placeholder+` ESCAPE '\')`)
		args = append(args, "%"+likeEscaper.Replace(filter.SearchTerm)+"%")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id       string
		name     string
		address  sql.NullString
		phone    sql.NullString
		email    string
		status   string
		joinedAt sql.NullTime
		exitedAt sql.NullTime
	)

	if err := row.Scan(
		&id,
		&name,
		&address,
		&phone,
		&email,
		&status,
		&joinedAt,
		&exitedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	e := &employee.Employee{
		ID:            id,
		Name:          name,
		Address:       nullableString(address),
		PhoneNumber:   nullableString(phone),
		Email:         email,
		Status:        employee.Status(status),
		DateOfJoining: joinedAt.Time.UTC(),
	}
	if exitedAt.Valid {
		t := exitedAt.Time.UTC()
		e.DateOfExit = &t
	}
	return e, nil
}

func scanCareerHistory(row pgx.Row) (*employee.CareerHistory, error) {
	var (
		id          string
		employeeID  string
		roleID      string
		roleTitle   string
		roleLevel   string
		managerID   sql.NullString
		managerName sql.NullString
		department  string
		salary      float64
		startDate   sql.NullTime
		endDate     sql.NullTime
		notes       sql.NullString
	)

	if err := row.Scan(
		&id,
		&employeeID,
		&roleID,
		&roleTitle,
		&roleLevel,
		&managerID,
		&managerName,
		&department,
		&salary,
		&startDate,
		&endDate,
		&notes,
	); err != nil {
		return nil, err
	}

	h := &employee.CareerHistory{
		ID:         id,
		EmployeeID: employeeID,
		Role:       employee.RoleSnapshot{ID: roleID, Title: roleTitle, Level: roleLevel},
		Department: department,
		Salary:     salary,
		StartDate:  startDate.Time.UTC(),
		Notes:      notes.String,
	}
	if managerID.Valid {
		h.Manager = &employee.ManagerRef{ID: managerID.String, Name: managerName.String}
	}
	if endDate.Valid {
		t := endDate.Time.UTC()
		h.EndDate = &t
	}
	return h, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case invalidTextRepresentation:
			// UUID として解釈できない ID は該当なしとして扱う
			return employee.ErrEmployeeNotFound
		}
	}

	return err
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
