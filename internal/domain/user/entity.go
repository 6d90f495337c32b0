package user

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"     // everything, including user management
	RolePayroll   Role = "payroll"   // employees, periods, attendance, approval, reports
	RolePettyCash Role = "pettycash" // read-only employees and periods
	RoleEmployee  Role = "employee"  // employee self-service tokens
)

// StaffRoles are the roles a back-office user account may hold.
var StaffRoles = []Role{RoleAdmin, RolePayroll, RolePettyCash}

func (r Role) IsStaff() bool {
	for _, s := range StaffRoles {
		if r == s {
			return true
		}
	}
	return false
}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
