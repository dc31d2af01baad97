package services

import (
	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
)

// requireRole is the authorization guard invoked at the top of every
// privileged service operation. The acting principal is an explicit
// parameter so authorization cannot be bypassed by a caller that skips the
// session layer's advisory checks.
func requireRole(principal *domain.User, roles ...domain.Role) error {
	if principal == nil {
		return domain.ErrPermissionDenied
	}
	for _, r := range roles {
		if principal.Role == r {
			return nil
		}
	}
	return domain.ErrPermissionDenied
}
