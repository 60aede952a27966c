package authz

// Owned is implemented by resources that carry owner identity fields. A
// resource may report more than one owner column (legacy schema drift).
type Owned interface {
	OwnerIDs() []string
}

// CanEditOrDelete reports whether the identity owns the resource. Every
// reported owner column is checked; empty columns never match.
func CanEditOrDelete(id Identity, resource Owned) bool {
	if id.ID == "" {
		return false
	}
	for _, owner := range resource.OwnerIDs() {
		if owner != "" && owner == id.ID {
			return true
		}
	}
	return false
}

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a stored role string to a Role. Unknown or empty values
// collapse to RoleUser, matching the missing-row default.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleModerator:
		return RoleModerator
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// Capability names an action a role may perform.
type Capability string

const (
	// CapabilityModerate grants access to the admin views and to post and
	// report status changes.
	CapabilityModerate Capability = "moderate"
)

var capabilities = map[Role]map[Capability]bool{
	RoleUser:      {},
	RoleModerator: {CapabilityModerate: true},
	RoleAdmin:     {CapabilityModerate: true},
}

// Can reports whether the role holds the capability.
func Can(role Role, capability Capability) bool {
	return capabilities[role][capability]
}
