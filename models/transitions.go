package models

// Allowed status transitions per role. Terminal states (rejected, completed)
// permit no further transition, only deletion.
var providerTransitions = map[string][]string{
	StatusRequest:    {StatusConfirmed, StatusRejected},
	StatusConfirmed:  {StatusProcessing, StatusCompleted},
	StatusProcessing: {StatusConfirmed, StatusCompleted},
}

var ownerTransitions = map[string][]string{
	StatusPending: {StatusOwnerConfirm, StatusRejected},
}

// CanTransition reports whether a booking in status from may move to status to
// under the given role's lifecycle.
func CanTransition(role Role, from, to string) bool {
	table := providerTransitions
	if role == RoleOwner {
		table = ownerTransitions
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanDelete reports whether a booking in the given status may be deleted.
// Both roles only allow deleting rejected or completed bookings.
func CanDelete(status string) bool {
	return status == StatusRejected || status == StatusCompleted
}
