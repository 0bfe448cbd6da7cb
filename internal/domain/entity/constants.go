package entity

// Priority constants for PurchaseRequest. Priority is informational only and
// never affects transition legality.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

var validPriorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// IsValidPriority reports whether p is a recognized priority.
func IsValidPriority(p string) bool {
	return validPriorities[p]
}

// Role constants, one per approval stage
const (
	RoleRequester         = "requester"
	RoleManager           = "manager"
	RoleProcurement       = "procurement"
	RoleFinance           = "finance"
	RoleManagingDirector  = "md"
	RolePaymentAuthorizer = "payment-authorizer"
)
