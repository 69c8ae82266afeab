package user

type Permission string

const (
	// Schedules & attendance
	PermissionScheduleView   Permission = "schedule.view"
	PermissionScheduleManage Permission = "schedule.manage"
	PermissionAttendanceMark Permission = "attendance.mark"
	PermissionAttendanceView Permission = "attendance.view"
	PermissionAnalyticsView  Permission = "analytics.view"

	// Ledgers
	PermissionFeeView      Permission = "fee.view"
	PermissionFeeManage    Permission = "fee.manage"
	PermissionSalaryView   Permission = "salary.view"
	PermissionSalaryManage Permission = "salary.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionScheduleView,
		PermissionScheduleManage,
		PermissionAttendanceMark,
		PermissionAttendanceView,
		PermissionAnalyticsView,
		PermissionFeeView,
		PermissionFeeManage,
		PermissionSalaryView,
		PermissionSalaryManage,
	},
	RoleTutor: {
		PermissionScheduleView,
		PermissionScheduleManage,
		PermissionAttendanceMark,
		PermissionAttendanceView,
		PermissionAnalyticsView,
	},
	RoleStudent: {
		PermissionScheduleView,
		PermissionAttendanceView,
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
