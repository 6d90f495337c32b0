package user

type Permission string

const (
	// Self service
	PermissionPasswordEditOwn Permission = "profile.password_edit_own"

	// Employees
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeManage Permission = "employee.manage"

	// Payroll periods
	PermissionPeriodView   Permission = "period.view"
	PermissionPeriodManage Permission = "period.manage"

	// Attendance
	PermissionAttendanceView    Permission = "attendance.view"
	PermissionAttendanceManage  Permission = "attendance.manage"
	PermissionAttendanceApprove Permission = "attendance.approve"

	// Payroll summary and reports
	PermissionPayrollView   Permission = "payroll.view"
	PermissionPayrollManage Permission = "payroll.manage"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionPeriodView,
		PermissionPeriodManage,
		PermissionAttendanceView,
		PermissionAttendanceManage,
		PermissionAttendanceApprove,
		PermissionPayrollView,
		PermissionPayrollManage,
		PermissionUserManage,
	},
	RolePayroll: {
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionPeriodView,
		PermissionPeriodManage,
		PermissionAttendanceView,
		PermissionAttendanceManage,
		PermissionAttendanceApprove,
		PermissionPayrollView,
		PermissionPayrollManage,
	},
	RolePettyCash: {
		PermissionEmployeeView,
		PermissionPeriodView,
	},
	RoleEmployee: {
		PermissionPasswordEditOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
