package auth

import "context"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
)

// Identity is the authenticated caller.
type Identity struct {
	CustomerID string
	Name       string
	Role       Role
	VendorID   string
}

func (i Identity) IsVendor() bool {
	return i.Role == RoleVendor && i.VendorID != ""
}

type ctxKey string

const identityKey ctxKey = "identity"

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.CustomerID == "" {
		return Identity{}, false
	}
	return id, true
}
