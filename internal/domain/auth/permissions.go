package auth

const (
	RoleEmployee   = "employee"
	RoleHOD        = "hod"
	RolePrincipal  = "principal"
	RoleHR         = "hr"
	RoleSuperAdmin = "superadmin"
)

const (
	PermCoreRead          = "core.read"
	PermCoreWrite         = "core.write"
	PermLeaveRead         = "leave.read"
	PermLeaveWrite        = "leave.write"
	PermLeaveApprove      = "leave.approve"
	PermCCLRecord         = "ccl.record"
	PermCCLApprove        = "ccl.approve"
	PermScheduleCheck     = "schedule.check"
	PermNotificationsRead = "notifications.read"
	PermAuditRead         = "audit.read"
	PermSystemAdmin       = "admin.system"
)

var DefaultPermissions = []string{
	PermCoreRead,
	PermCoreWrite,
	PermLeaveRead,
	PermLeaveWrite,
	PermLeaveApprove,
	PermCCLRecord,
	PermCCLApprove,
	PermScheduleCheck,
	PermNotificationsRead,
	PermAuditRead,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermCoreRead,
		PermLeaveRead,
		PermLeaveWrite,
		PermScheduleCheck,
		PermNotificationsRead,
	},
	RoleHOD: {
		PermCoreRead,
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermCCLRecord,
		PermScheduleCheck,
		PermNotificationsRead,
	},
	RolePrincipal: {
		PermCoreRead,
		PermLeaveRead,
		PermLeaveApprove,
		PermCCLApprove,
		PermNotificationsRead,
	},
	RoleHR: {
		PermCoreRead,
		PermCoreWrite,
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermNotificationsRead,
		PermAuditRead,
	},
	RoleSuperAdmin: {
		PermCoreRead,
		PermCoreWrite,
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermCCLRecord,
		PermCCLApprove,
		PermScheduleCheck,
		PermNotificationsRead,
		PermAuditRead,
		PermSystemAdmin,
	},
}
