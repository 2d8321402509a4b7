package employee

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

type dollarFormatter struct{}

func (dollarFormatter) FormatSalary(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func sampleEmployee() *Employee {
	exit := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)
	return &Employee{
		ID:            "e-1",
		Name:          "Dana Scully",
		Email:         "dana@example.com",
		Address:       strPtr("4 Elm St"),
		Status:        StatusInactive,
		DateOfJoining: time.Date(2019, 7, 1, 8, 30, 0, 0, time.UTC),
		DateOfExit:    &exit,
		CareerHistories: []*CareerHistory{
			{
				ID:         "ch-1",
				EmployeeID: "e-1",
				Role:       RoleSnapshot{ID: "r-1", Title: "Software Engineer", Level: "Junior"},
				Department: "Engineering",
				Salary:     60000,
				StartDate:  time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC),
				EndDate:    &end,
				Notes:      "Joined as graduate",
			},
			{
				ID:         "ch-2",
				EmployeeID: "e-1",
				Role:       RoleSnapshot{ID: "r-2", Title: "Engineering Manager", Level: "Lead"},
				Manager:    &ManagerRef{ID: "e-9", Name: "Walter Skinner"},
				Department: "Engineering",
				Salary:     95000.5,
				StartDate:  time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
				Notes:      "Promoted",
			},
		},
	}
}

func TestProjector_Employee(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewProjector(&stubClock{now: now}, dollarFormatter{})

	view := p.Employee(sampleEmployee())

	if view.DateOfJoining != "2019-07-01" {
		t.Fatalf("unexpected join date %s", view.DateOfJoining)
	}
	if view.DateOfExit == nil || *view.DateOfExit != "2024-06-30" {
		t.Fatalf("unexpected exit date %v", view.DateOfExit)
	}
	// 2019-07-01 08:30 → 2024-06-30 00:00 は 1825 日
	if view.TenureInYears != 5 {
		t.Fatalf("expected tenure 5, got %d", view.TenureInYears)
	}
	if view.PhoneNumber != nil {
		t.Fatalf("expected absent phone number")
	}

	if len(view.CareerDetails) != 2 {
		t.Fatalf("expected 2 career entries, got %d", len(view.CareerDetails))
	}

	latest := view.CareerDetails[0]
	if latest.Role.Title != "Engineering Manager" || latest.Role.Level != "Lead" {
		t.Fatalf("expected latest entry first, got %+v", latest.Role)
	}
	if latest.ManagerName == nil || *latest.ManagerName != "Walter Skinner" {
		t.Fatalf("unexpected manager name %v", latest.ManagerName)
	}
	if latest.Salary != "$95000.50" {
		t.Fatalf("unexpected salary %s", latest.Salary)
	}
	if latest.EndDate != nil {
		t.Fatalf("expected open-ended entry, got end date %s", *latest.EndDate)
	}
	// 2022-01-01 → 2025-01-01 = 1096 日
	if latest.DurationInMonths != 36 {
		t.Fatalf("expected 36 months, got %d", latest.DurationInMonths)
	}

	first := view.CareerDetails[1]
	if first.StartDate != "2019-07-01" || first.EndDate == nil || *first.EndDate != "2021-12-31" {
		t.Fatalf("unexpected dates: %s - %v", first.StartDate, first.EndDate)
	}
	if first.DurationInMonths != 30 {
		t.Fatalf("expected 30 months, got %d", first.DurationInMonths)
	}
}

func TestProjector_EntryWithoutManagerOmitsName(t *testing.T) {
	t.Parallel()

	p := NewProjector(&stubClock{now: time.Now().UTC()}, nil)
	emp := sampleEmployee()
	emp.CareerHistories = emp.CareerHistories[:1]

	view := p.Employee(emp)
	if view.CareerDetails[0].ManagerName != nil {
		t.Fatalf("expected manager name to be absent")
	}

	b, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	if strings.Contains(string(b), "managerName") {
		t.Fatalf("expected managerName to be omitted, got %s", b)
	}
	if strings.Contains(string(b), "phoneNumber") {
		t.Fatalf("expected phoneNumber to be omitted, got %s", b)
	}
}

func TestProjector_DefaultSalaryFormat(t *testing.T) {
	t.Parallel()

	p := NewProjector(nil, nil)
	emp := sampleEmployee()

	view := p.Employee(emp)
	if view.CareerDetails[1].Salary != "60000.00" {
		t.Fatalf("unexpected fallback salary format %s", view.CareerDetails[1].Salary)
	}
}

func TestProjector_DoesNotReorderSource(t *testing.T) {
	t.Parallel()

	p := NewProjector(nil, nil)
	emp := sampleEmployee()

	_ = p.Employee(emp)
	if emp.CareerHistories[0].ID != "ch-1" {
		t.Fatalf("projection must not mutate the aggregate")
	}
}

func TestProjector_NilEmployee(t *testing.T) {
	t.Parallel()

	if NewProjector(nil, nil).Employee(nil) != nil {
		t.Fatal("expected nil view for nil employee")
	}
}
