package authz

// Identity is the resolved caller as reported by the identity provider.
type Identity struct {
	ID    string
	Email string
}
