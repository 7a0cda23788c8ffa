// Package authz holds the role predicates gating review operations.
// The checks are pure; authentication happens upstream in the HTTP
// middleware.
package authz

import (
	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
)

// AuthorizeReviewCreate permits review creation for buyers only
func AuthorizeReviewCreate(user *domain.User) error {
	if user == nil || user.Role != domain.RoleBuyer {
		return domain.ErrForbidden
	}
	return nil
}

// AuthorizeReviewDelete permits review deletion for admins only
func AuthorizeReviewDelete(user *domain.User) error {
	if user == nil || user.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
