package auth

type Role string

const (
	RoleOwner    Role = "owner"    // Full access, including cache administration
	RoleManager  Role = "manager"  // Can clear cached summaries
	RoleEmployee Role = "employee" // Read-only access to summaries
)

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// CanManageCache reports whether the role may invalidate cached summaries.
func (r Role) CanManageCache() bool {
	return r == RoleManager || r == RoleOwner
}
