package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/role"
)

// ErrUnknownReference は職歴が存在しない社員・役職を参照した場合に返却されます。
var ErrUnknownReference = errors.New("seed: unknown reference")

// Store はシード投入先の永続化層です。
type Store interface {
	CountRoles(ctx context.Context) (int, error)
	CountEmployees(ctx context.Context) (int, error)
	CountCareerHistories(ctx context.Context) (int, error)
	RoleIDsByTitle(ctx context.Context) (map[string]string, error)
	EmployeeIDsByEmail(ctx context.Context) (map[string]string, error)
	InsertRoles(ctx context.Context, roles []*role.Role) (int64, error)
	InsertEmployees(ctx context.Context, employees []*employee.Employee) (int64, error)
	InsertCareerHistories(ctx context.Context, histories []*employee.CareerHistory) (int64, error)
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

// Result は投入件数です。既にデータがあり投入を見送ったテーブルは 0 になります。
type Result struct {
	Roles           int64
	Employees       int64
	CareerHistories int64
}

// Seeder は空のテーブルにだけ初期データを投入します。
type Seeder struct {
	store Store
	tx    TransactionManager
	newID func() string
}

// NewSeeder は Seeder を生成します。
func NewSeeder(store Store, tx TransactionManager) *Seeder {
	return &Seeder{store: store, tx: tx, newID: uuid.NewString}
}

// Run はテーブルごとに件数を確認し、空であれば fixture の内容を 1 トランザクションで投入します。
func (s *Seeder) Run(ctx context.Context, f *Fixture) (Result, error) {
	var res Result
	if f == nil {
		return res, nil
	}

	run := func(txCtx context.Context) error {
		var err error
		if res.Roles, err = s.seedRoles(txCtx, f.Roles); err != nil {
			return err
		}
		if res.Employees, err = s.seedEmployees(txCtx, f.Employees); err != nil {
			return err
		}
		if res.CareerHistories, err = s.seedCareerHistories(txCtx, f.CareerHistories); err != nil {
			return err
		}
		return nil
	}

	var err error
	if s.tx != nil {
		err = s.tx.WithinReadWrite(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return Result{}, err
	}

	log.Printf("seed completed: roles=%d employees=%d career_histories=%d", res.Roles, res.Employees, res.CareerHistories)
	return res, nil
}

func (s *Seeder) seedRoles(ctx context.Context, fixtures []RoleFixture) (int64, error) {
	if len(fixtures) == 0 {
		return 0, nil
	}
	count, err := s.store.CountRoles(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("seed: roles already populated (%d rows), skipping", count)
		return 0, nil
	}

	roles := make([]*role.Role, 0, len(fixtures))
	for _, rf := range fixtures {
		roles = append(roles, &role.Role{
			ID:             s.newID(),
			Title:          strings.TrimSpace(rf.Title),
			Level:          strings.TrimSpace(rf.Level),
			HierarchyLevel: rf.HierarchyLevel,
			Description:    rf.Description,
		})
	}

	n, err := s.store.InsertRoles(ctx, roles)
	if err != nil {
		return 0, fmt.Errorf("seed roles: %w", err)
	}
	return n, nil
}

func (s *Seeder) seedEmployees(ctx context.Context, fixtures []EmployeeFixture) (int64, error) {
	if len(fixtures) == 0 {
		return 0, nil
	}
	count, err := s.store.CountEmployees(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("seed: employees already populated (%d rows), skipping", count)
		return 0, nil
	}

	employees := make([]*employee.Employee, 0, len(fixtures))
	for i, ef := range fixtures {
		joined, err := parseRequiredDate(ef.DateOfJoining)
		if err != nil {
			return 0, fmt.Errorf("%w: employees[%d].date_of_joining: %v", ErrInvalidFixture, i, err)
		}
		exit, err := parseOptionalDate(ef.DateOfExit)
		if err != nil {
			return 0, fmt.Errorf("%w: employees[%d].date_of_exit: %v", ErrInvalidFixture, i, err)
		}

		status := employee.StatusActive
		if trimmed := strings.TrimSpace(ef.Status); trimmed != "" {
			status = employee.Status(trimmed)
		}

		employees = append(employees, &employee.Employee{
			ID:            s.newID(),
			Name:          strings.TrimSpace(ef.Name),
			Address:       ef.Address,
			PhoneNumber:   ef.PhoneNumber,
			Email:         strings.TrimSpace(ef.Email),
			Status:        status,
			DateOfJoining: joined,
			DateOfExit:    exit,
		})
	}

	n, err := s.store.InsertEmployees(ctx, employees)
	if err != nil {
		return 0, fmt.Errorf("seed employees: %w", err)
	}
	return n, nil
}

func (s *Seeder) seedCareerHistories(ctx context.Context, fixtures []CareerHistoryFixture) (int64, error) {
	if len(fixtures) == 0 {
		return 0, nil
	}
	count, err := s.store.CountCareerHistories(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("seed: career histories already populated (%d rows), skipping", count)
		return 0, nil
	}

	roleIDs, err := s.store.RoleIDsByTitle(ctx)
	if err != nil {
		return 0, err
	}
	employeeIDs, err := s.store.EmployeeIDsByEmail(ctx)
	if err != nil {
		return 0, err
	}

	histories := make([]*employee.CareerHistory, 0, len(fixtures))
	for i, hf := range fixtures {
		employeeID, ok := employeeIDs[strings.TrimSpace(hf.Employee)]
		if !ok {
			return 0, fmt.Errorf("%w: career_histories[%d]: employee %q", ErrUnknownReference, i, hf.Employee)
		}
		roleID, ok := roleIDs[strings.TrimSpace(hf.Role)]
		if !ok {
			return 0, fmt.Errorf("%w: career_histories[%d]: role %q", ErrUnknownReference, i, hf.Role)
		}

		start, err := parseRequiredDate(hf.StartDate)
		if err != nil {
			return 0, fmt.Errorf("%w: career_histories[%d].start_date: %v", ErrInvalidFixture, i, err)
		}
		end, err := parseOptionalDate(hf.EndDate)
		if err != nil {
			return 0, fmt.Errorf("%w: career_histories[%d].end_date: %v", ErrInvalidFixture, i, err)
		}

		h := &employee.CareerHistory{
			ID:         s.newID(),
			EmployeeID: employeeID,
			Role:       employee.RoleSnapshot{ID: roleID, Title: hf.Role},
			Department: hf.Department,
			Salary:     hf.Salary,
			StartDate:  start,
			EndDate:    end,
			Notes:      hf.Notes,
		}
		if manager := strings.TrimSpace(hf.Manager); manager != "" {
			managerID, ok := employeeIDs[manager]
			if !ok {
				return 0, fmt.Errorf("%w: career_histories[%d]: manager %q", ErrUnknownReference, i, hf.Manager)
			}
			if managerID == employeeID {
				return 0, fmt.Errorf("%w: career_histories[%d]: employee cannot manage themselves", ErrInvalidFixture, i)
			}
			h.Manager = &employee.ManagerRef{ID: managerID}
		}
		histories = append(histories, h)
	}

	n, err := s.store.InsertCareerHistories(ctx, histories)
	if err != nil {
		return 0, fmt.Errorf("seed career histories: %w", err)
	}
	return n, nil
}
