package seed

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
	"gopkg.in/yaml.v3"
)

const fixtureDateLayout = "2006-01-02"

// ErrInvalidFixture はシード定義が不正な場合に返却されます。
var ErrInvalidFixture = errors.New("seed: invalid fixture")

// Fixture は初期データの定義です。職歴は社員をメールアドレス、役職を役職名で参照します。
type Fixture struct {
	Roles           []RoleFixture          `yaml:"roles"`
	Employees       []EmployeeFixture      `yaml:"employees"`
	CareerHistories []CareerHistoryFixture `yaml:"career_histories"`
}

// RoleFixture は役職の定義です。
type RoleFixture struct {
	Title          string  `yaml:"title"`
	Level          string  `yaml:"level"`
	HierarchyLevel int     `yaml:"hierarchy_level"`
	Description    *string `yaml:"description"`
}

// EmployeeFixture は社員の定義です。
type EmployeeFixture struct {
	Name          string  `yaml:"name"`
	Email         string  `yaml:"email"`
	PhoneNumber   *string `yaml:"phone_number"`
	Address       *string `yaml:"address"`
	Status        string  `yaml:"status"`
	DateOfJoining string  `yaml:"date_of_joining"`
	DateOfExit    string  `yaml:"date_of_exit"`
}

// CareerHistoryFixture は職歴の定義です。
type CareerHistoryFixture struct {
	Employee   string  `yaml:"employee"`
	Role       string  `yaml:"role"`
	Manager    string  `yaml:"manager"`
	Department string  `yaml:"department"`
	Salary     float64 `yaml:"salary"`
	StartDate  string  `yaml:"start_date"`
	EndDate    string  `yaml:"end_date"`
	Notes      string  `yaml:"notes"`
}

// LoadFixture は YAML ファイルからシード定義を読み込みます。
func LoadFixture(path string) (*Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read fixture %s: %w", path, err)
	}
	return ParseFixture(b)
}

// ParseFixture は YAML からシード定義を組み立てて検証します。
func ParseFixture(b []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("seed: parse fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate は必須項目と日付書式を検証します。参照先の存在はデータベースの状態に依存するため投入時に確認します。
func (f *Fixture) Validate() error {
	titles := make(map[string]struct{}, len(f.Roles))
	for i, r := range f.Roles {
		if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Level) == "" {
			return fmt.Errorf("%w: roles[%d]: title and level are required", ErrInvalidFixture, i)
		}
		if _, dup := titles[r.Title]; dup {
			return fmt.Errorf("%w: roles[%d]: duplicate title %q", ErrInvalidFixture, i, r.Title)
		}
		titles[r.Title] = struct{}{}
	}

	for i, e := range f.Employees {
		if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Email) == "" {
			return fmt.Errorf("%w: employees[%d]: name and email are required", ErrInvalidFixture, i)
		}
		if _, err := parseRequiredDate(e.DateOfJoining); err != nil {
			return fmt.Errorf("%w: employees[%d].date_of_joining: %v", ErrInvalidFixture, i, err)
		}
		if _, err := parseOptionalDate(e.DateOfExit); err != nil {
			return fmt.Errorf("%w: employees[%d].date_of_exit: %v", ErrInvalidFixture, i, err)
		}
	}

	for i, h := range f.CareerHistories {
		if strings.TrimSpace(h.Employee) == "" || strings.TrimSpace(h.Role) == "" {
			return fmt.Errorf("%w: career_histories[%d]: employee and role are required", ErrInvalidFixture, i)
		}
		if h.Manager != "" && h.Manager == h.Employee {
			return fmt.Errorf("%w: career_histories[%d]: employee cannot manage themselves", ErrInvalidFixture, i)
		}
		if math.IsNaN(h.Salary) || math.Abs(h.Salary) > employee.MaxExactSalary {
			return fmt.Errorf("%w: career_histories[%d].salary: out of range", ErrInvalidFixture, i)
		}
		start, err := parseRequiredDate(h.StartDate)
		if err != nil {
			return fmt.Errorf("%w: career_histories[%d].start_date: %v", ErrInvalidFixture, i, err)
		}
		end, err := parseOptionalDate(h.EndDate)
		if err != nil {
			return fmt.Errorf("%w: career_histories[%d].end_date: %v", ErrInvalidFixture, i, err)
		}
		if end != nil && end.Before(start) {
			return fmt.Errorf("%w: career_histories[%d]: end_date precedes start_date", ErrInvalidFixture, i)
		}
	}
	return nil
}

func parseRequiredDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, errors.New("date is required")
	}
	return time.Parse(fixtureDateLayout, strings.TrimSpace(raw))
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(fixtureDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadWithFakes は path のフィクスチャを読み込み、fake 件の合成社員を加えます。
// path が空の場合は合成社員のみのフィクスチャを返します。
func LoadWithFakes(path string, fake int, now time.Time) (*Fixture, error) {
	f := &Fixture{}
	if path != "" {
		loaded, err := LoadFixture(path)
		if err != nil {
			return nil, err
		}
		f = loaded
	}
	f.AppendFakeEmployees(fake, now)
	return f, nil
}
