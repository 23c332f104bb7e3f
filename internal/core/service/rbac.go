package service

import (
	"fmt"

	"github.com/s2k/videogame-store/internal/core/domain"
)

// requireRole enforces role-based access control on a service call.
func requireRole(actor *domain.Account, allowedRoles ...domain.Role) error {
	if actor == nil {
		return fmt.Errorf("%w: no acting account", domain.ErrPermissionDenied)
	}
	for _, r := range allowedRoles {
		if actor.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: %s may not perform this action", domain.ErrPermissionDenied, actor.Role)
}

// requireCustomer also checks the cart exists, so callers can use it directly.
func requireCustomer(actor *domain.Account) (*domain.Cart, error) {
	if err := requireRole(actor, domain.RoleCustomer); err != nil {
		return nil, err
	}
	if actor.Cart() == nil {
		return nil, fmt.Errorf("%w: account %d has no cart", domain.ErrPermissionDenied, actor.ID)
	}
	return actor.Cart(), nil
}
