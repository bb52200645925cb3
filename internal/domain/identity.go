package domain

// IdentityKind distinguishes how a caller was identified.
type IdentityKind string

const (
	// IdentityUser means the caller presented a valid access credential.
	IdentityUser IdentityKind = "user"
	// IdentityIP means the caller is anonymous and identified by address.
	IdentityIP IdentityKind = "ip"
)

// Identity is the partition key for quotas and locks: either an authenticated
// user id or, failing that, the client's network address. Once resolved for a
// request it must be used consistently for quota, lock, and persistence
// lookups within that request.
type Identity struct {
	Kind  IdentityKind
	Value string
}

// UserIdentity builds an authenticated identity.
func UserIdentity(userID string) Identity {
	return Identity{Kind: IdentityUser, Value: userID}
}

// IPIdentity builds an anonymous identity keyed by client address.
func IPIdentity(addr string) Identity {
	return Identity{Kind: IdentityIP, Value: addr}
}

// Key returns the namespaced store key component, e.g. "user:abc123" or
// "ip:203.0.113.7". The prefix keeps user and IP namespaces from colliding.
func (i Identity) Key() string {
	return string(i.Kind) + ":" + i.Value
}

// Authenticated reports whether the identity belongs to a logged-in user.
func (i Identity) Authenticated() bool { return i.Kind == IdentityUser }
