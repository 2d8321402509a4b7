package employee

import "time"

// Status は社員の在籍状態です。
// "Active" / "Inactive" 以外の値もそのまま保持されます。
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

const (
	daysPerTenureYear    = 365
	daysPerDurationMonth = 30
)

// Employee は社員エンティティです。
type Employee struct {
	ID              string
	Name            string
	Address         *string
	PhoneNumber     *string
	Email           string
	Status          Status
	DateOfJoining   time.Time
	DateOfExit      *time.Time
	CareerHistories []*CareerHistory
}

// TenureInYears は入社日から退職日（未設定なら now）までの経過年数を返します。
func (e *Employee) TenureInYears(now time.Time) int {
	end := now
	if e.DateOfExit != nil {
		end = *e.DateOfExit
	}
	return elapsedDays(e.DateOfJoining, end) / daysPerTenureYear
}

// MaxExactSalary は float64 で 1 セント単位まで正確に保持できる給与の上限です。
// NUMERIC(18,2) 列はこれより大きな値も格納できますが、投入時にこの上限で弾きます。
const MaxExactSalary = 90_000_000_000_000

// CareerHistory は社員の職歴（役職・部署・給与・上長）の 1 区間です。
type CareerHistory struct {
	ID         string
	EmployeeID string
	Role       RoleSnapshot
	Manager    *ManagerRef
	Department string
	Salary     float64
	StartDate  time.Time
	EndDate    *time.Time
	Notes      string
}

// DurationInMonths は開始日から終了日（未設定なら now）までの経過月数を返します。
func (c *CareerHistory) DurationInMonths(now time.Time) int {
	end := now
	if c.EndDate != nil {
		end = *c.EndDate
	}
	return elapsedDays(c.StartDate, end) / daysPerDurationMonth
}

// RoleSnapshot は職歴に紐づく役職情報のスナップショットです。
type RoleSnapshot struct {
	ID    string
	Title string
	Level string
}

// ManagerRef は上長への弱参照です。読み取り時に名前を解決します。
type ManagerRef struct {
	ID   string
	Name string
}

func elapsedDays(start, end time.Time) int {
	days := int(end.Sub(start) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}
