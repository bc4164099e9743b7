// Package authz holds the static role-based authorization policy. The policy
// is a fixed table; there is no per-request state.
package authz

import "github.com/taskhub/task-api/internal/core/domain"

// Operation names a capability gated by the policy.
type Operation string

const (
	ViewTasks    Operation = "ViewTasks"
	CreateTask   Operation = "CreateTask"
	EditTask     Operation = "EditTask"
	DeleteTask   Operation = "DeleteTask"
	CompleteTask Operation = "CompleteTask"
)

// policy maps each role to the operations it may perform. Owner may do
// everything; Guest may only view.
var policy = map[domain.Role]map[Operation]struct{}{
	domain.RoleOwner: {
		ViewTasks:    {},
		CreateTask:   {},
		EditTask:     {},
		DeleteTask:   {},
		CompleteTask: {},
	},
	domain.RoleGuest: {
		ViewTasks: {},
	},
}

// Allowed reports whether role may perform op. Unknown roles and unknown
// operations are denied.
func Allowed(role domain.Role, op Operation) bool {
	ops, ok := policy[role]
	if !ok {
		return false
	}
	_, ok = ops[op]
	return ok
}
