package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit"
)

var fakeDepartments = []string{"Engineering", "Platform", "Research", "Product", "Operations"}

// AppendFakeEmployees は gofakeit で生成した社員と職歴を n 件追加します。
// 役職が定義されていない場合は職歴を生成しません。
func (f *Fixture) AppendFakeEmployees(n int, now time.Time) {
	if n <= 0 {
		return
	}

	earliest := now.AddDate(-15, 0, 0)
	managers := make([]string, 0, len(f.Employees)+n)
	for _, e := range f.Employees {
		managers = append(managers, e.Email)
	}

	for i := 0; i < n; i++ {
		email := fmt.Sprintf("fake%03d.%s", i+1, gofakeit.Email())
		joined := gofakeit.DateRange(earliest, now).UTC()

		phone := gofakeit.Phone()
		address := fmt.Sprintf("%s, %s", gofakeit.Street(), gofakeit.City())

		emp := EmployeeFixture{
			Name:          gofakeit.Name(),
			Email:         email,
			PhoneNumber:   &phone,
			Address:       &address,
			Status:        "Active",
			DateOfJoining: joined.Format(fixtureDateLayout),
		}
		// 約 1 割は退職済みにする
		if gofakeit.Number(1, 10) == 1 {
			exit := gofakeit.DateRange(joined, now).UTC()
			emp.Status = "Inactive"
			emp.DateOfExit = exit.Format(fixtureDateLayout)
		}
		f.Employees = append(f.Employees, emp)

		if len(f.Roles) > 0 {
			h := CareerHistoryFixture{
				Employee:   email,
				Role:       f.Roles[gofakeit.Number(0, len(f.Roles)-1)].Title,
				Department: fakeDepartments[gofakeit.Number(0, len(fakeDepartments)-1)],
				Salary:     float64(gofakeit.Number(50, 250) * 1000),
				StartDate:  emp.DateOfJoining,
				EndDate:    emp.DateOfExit,
				Notes:      gofakeit.Sentence(6),
			}
			if len(managers) > 0 {
				h.Manager = managers[gofakeit.Number(0, len(managers)-1)]
			}
			f.CareerHistories = append(f.CareerHistories, h)
		}

		managers = append(managers, email)
	}
}
