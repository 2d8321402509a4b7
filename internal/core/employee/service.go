package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// IDGenerator は新規社員の ID を払い出します。
type IDGenerator func() string

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo      Repository
	clock     Clock
	tx        TransactionManager
	projector *Projector
	newID     IDGenerator
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	ListEmployees(ctx context.Context, in ListEmployeesInput) (*ListEmployeesResult, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*EmployeeView, error)
	StageEmployee(ctx context.Context, in CreateEmployeeInput) (*PendingEmployee, error)
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*CreateEmployeeResult, error)
}

// Option は Service の任意設定です。
type Option func(*Service)

// WithSalaryFormatter は給与の表示形式を差し替えます。
func WithSalaryFormatter(f SalaryFormatter) Option {
	return func(s *Service) {
		s.projector = NewProjector(s.clock, f)
	}
}

// WithIDGenerator は ID の払い出し方法を差し替えます。
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager, opts ...Option) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	s := &Service{
		repo:      repo,
		clock:     clock,
		tx:        tx,
		projector: NewProjector(clock, nil),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	ID string
}

// CreateEmployeeInput は社員作成時の入力です。検証済みであることを前提とします。
type CreateEmployeeInput struct {
	Name        string
	Address     *string
	PhoneNumber *string
	Email       string
	Status      string
}

// ListEmployeesResult は一覧取得結果を表します。
type ListEmployeesResult struct {
	TotalCount int             `json:"totalCount"`
	PageNumber int             `json:"pageNumber"`
	PageSize   int             `json:"pageSize"`
	Employees  []*EmployeeView `json:"employees"`
}

// CreateEmployeeResult は社員作成結果です。Created が false の場合は何も永続化されていません。
type CreateEmployeeResult struct {
	Employee *EmployeeView
	Created  bool
}

// PendingEmployee はコミット待ちの社員です。
type PendingEmployee struct {
	Employee *Employee

	write    StagedWrite
	finished bool
}

// Commit は書き込みを確定し、1 行以上反映された場合に true を返します。
func (p *PendingEmployee) Commit(ctx context.Context) (bool, error) {
	if p.finished {
		return false, ErrWriteFinished
	}
	p.finished = true

	affected, err := p.write.Commit(ctx)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Discard は書き込みを破棄します。
func (p *PendingEmployee) Discard(ctx context.Context) error {
	if p.finished {
		return nil
	}
	p.finished = true
	return p.write.Discard(ctx)
}

// ListEmployees は条件に一致する社員のページと総件数を返します。
func (s *Service) ListEmployees(ctx context.Context, in ListEmployeesInput) (*ListEmployeesResult, error) {
	query := NewListQuery(in)

	var (
		employees []*Employee
		total     int
	)

	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx, query.Filter)
		if err != nil {
			return fmt.Errorf("list employees: %w", err)
		}

		count, err := s.repo.Count(txCtx, query.Filter)
		if err != nil {
			return fmt.Errorf("count employees: %w", err)
		}

		employees = found
		total = count
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListEmployeesResult{
		TotalCount: total,
		PageNumber: query.PageNumber,
		PageSize:   query.PageSize,
		Employees:  s.projector.Employees(employees),
	}, nil
}

// GetEmployee は社員を取得します。存在しない場合は nil を返します。空の ID も存在しないものとして扱います。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*EmployeeView, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, nil
	}

	var found *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		e, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, ErrEmployeeNotFound) {
				return nil
			}
			return err
		}
		found = e
		return nil
	}); err != nil {
		return nil, err
	}

	if found == nil {
		return nil, nil
	}
	return s.projector.Employee(found), nil
}

// StageEmployee は社員を組み立てて書き込み待ちにします。
// 呼び出し側が Commit するまで永続化されません。
func (s *Service) StageEmployee(ctx context.Context, in CreateEmployeeInput) (*PendingEmployee, error) {
	emp, err := s.buildEmployee(in)
	if err != nil {
		return nil, err
	}

	write, err := s.repo.Stage(ctx, emp)
	if err != nil {
		return nil, fmt.Errorf("stage employee: %w", err)
	}

	return &PendingEmployee{Employee: emp, write: write}, nil
}

// CreateEmployee は社員を作成してコミットします。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*CreateEmployeeResult, error) {
	pending, err := s.StageEmployee(ctx, in)
	if err != nil {
		return nil, err
	}

	created, err := pending.Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("commit employee: %w", err)
	}
	if !created {
		return &CreateEmployeeResult{Created: false}, nil
	}

	return &CreateEmployeeResult{
		Employee: s.projector.Employee(pending.Employee),
		Created:  true,
	}, nil
}

func (s *Service) buildEmployee(in CreateEmployeeInput) (*Employee, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	status := StatusActive
	if trimmed := strings.TrimSpace(in.Status); trimmed != "" {
		status = Status(trimmed)
	}

	return &Employee{
		ID:            s.newID(),
		Name:          name,
		Address:       cloneString(in.Address),
		PhoneNumber:   cloneString(in.PhoneNumber),
		Email:         email,
		Status:        status,
		DateOfJoining: s.clock.Now(),
	}, nil
}
