package employee

import (
	"sort"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// SalaryFormatter は給与を通貨表記の文字列に変換します。
type SalaryFormatter interface {
	FormatSalary(amount float64) string
}

type plainSalaryFormatter struct{}

func (plainSalaryFormatter) FormatSalary(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// EmployeeView は社員の公開表現です。
type EmployeeView struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Address       *string             `json:"address,omitempty"`
	PhoneNumber   *string             `json:"phoneNumber,omitempty"`
	Email         string              `json:"email"`
	Status        string              `json:"status"`
	DateOfJoining string              `json:"dateOfJoining"`
	DateOfExit    *string             `json:"dateOfExit,omitempty"`
	TenureInYears int                 `json:"tenureInYears"`
	CareerDetails []CareerHistoryView `json:"careerDetails"`
}

// CareerHistoryView は職歴の公開表現です。
type CareerHistoryView struct {
	Role             RoleView `json:"role"`
	ManagerName      *string  `json:"managerName,omitempty"`
	Department       string   `json:"department"`
	Salary           string   `json:"salary"`
	StartDate        string   `json:"startDate"`
	EndDate          *string  `json:"endDate,omitempty"`
	Notes            string   `json:"notes"`
	DurationInMonths int      `json:"durationInMonths"`
}

// RoleView は職歴に表示する役職の要約です。
type RoleView struct {
	Title string `json:"title"`
	Level string `json:"level"`
}

// Projector は社員集約を公開表現に変換します。
// 在籍年数・在職月数は変換時点の clock から毎回計算します。
type Projector struct {
	clock  Clock
	salary SalaryFormatter
}

// NewProjector は Projector を生成します。
func NewProjector(clock Clock, salary SalaryFormatter) *Projector {
	if clock == nil {
		clock = realClock{}
	}
	if salary == nil {
		salary = plainSalaryFormatter{}
	}
	return &Projector{clock: clock, salary: salary}
}

// Employee は社員 1 件を変換します。
func (p *Projector) Employee(e *Employee) *EmployeeView {
	if e == nil {
		return nil
	}

	now := p.clock.Now()

	histories := make([]*CareerHistory, 0, len(e.CareerHistories))
	for _, ch := range e.CareerHistories {
		if ch != nil {
			histories = append(histories, ch)
		}
	}
	sort.SliceStable(histories, func(i, j int) bool {
		return histories[i].StartDate.After(histories[j].StartDate)
	})

	details := make([]CareerHistoryView, 0, len(histories))
	for _, ch := range histories {
		details = append(details, p.careerHistory(ch, now))
	}

	return &EmployeeView{
		ID:            e.ID,
		Name:          e.Name,
		Address:       cloneString(e.Address),
		PhoneNumber:   cloneString(e.PhoneNumber),
		Email:         e.Email,
		Status:        string(e.Status),
		DateOfJoining: formatDate(e.DateOfJoining),
		DateOfExit:    formatOptionalDate(e.DateOfExit),
		TenureInYears: e.TenureInYears(now),
		CareerDetails: details,
	}
}

// Employees は一覧の順序を保ったまま変換します。
func (p *Projector) Employees(employees []*Employee) []*EmployeeView {
	views := make([]*EmployeeView, 0, len(employees))
	for _, e := range employees {
		if view := p.Employee(e); view != nil {
			views = append(views, view)
		}
	}
	return views
}

func (p *Projector) careerHistory(ch *CareerHistory, now time.Time) CareerHistoryView {
	var managerName *string
	if ch.Manager != nil {
		name := ch.Manager.Name
		managerName = &name
	}

	return CareerHistoryView{
		Role: RoleView{
			Title: ch.Role.Title,
			Level: ch.Role.Level,
		},
		ManagerName:      managerName,
		Department:       ch.Department,
		Salary:           p.salary.FormatSalary(ch.Salary),
		StartDate:        formatDate(ch.StartDate),
		EndDate:          formatOptionalDate(ch.EndDate),
		Notes:            ch.Notes,
		DurationInMonths: ch.DurationInMonths(now),
	}
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := formatDate(*t)
	return &formatted
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
