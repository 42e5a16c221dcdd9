package graph

import (
	"context"
	"errors"

	"foodcart-be/internal/auth"
	"foodcart-be/internal/graph/model"

	"github.com/vektah/gqlparser/v2/ast"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrVendorOnly   = errors.New("forbidden: vendor only")
)

// AuthDirective guards fields marked @auth. The role argument defaults to
// CUSTOMER, which any signed-in caller satisfies.
func AuthDirective(ctx context.Context, dir *ast.Directive) error {
	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		return ErrUnauthorized
	}

	required := model.RoleCustomer
	if arg := dir.Arguments.ForName("role"); arg != nil && arg.Value != nil {
		required = model.Role(arg.Value.Raw)
	}

	if required == model.RoleVendor && !identity.IsVendor() {
		return ErrVendorOnly
	}
	return nil
}
