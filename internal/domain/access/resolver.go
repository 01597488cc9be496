package access

import "context"

type AssignmentRepository interface {
	PropertyIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	PropertyIDsByStaff(ctx context.Context, staffID string) ([]string, error)
}

type Resolver struct {
	repo AssignmentRepository
}

func NewResolver(repo AssignmentRepository) *Resolver {
	return &Resolver{repo: repo}
}

// ScopeFor narrows a principal to the records it may touch. Owners and staff
// get the property sets they are assigned to; tenants see only their own
// records; guests see nothing property-scoped.
func (r *Resolver) ScopeFor(ctx context.Context, p Principal) (Scope, error) {
	switch p.Role {
	case RoleAdmin:
		return Scope{Kind: Unrestricted, UserID: p.ID}, nil
	case RoleOwner:
		ids, err := r.repo.PropertyIDsByOwner(ctx, p.ID)
		if err != nil {
			return Scope{}, err
		}
		return Scope{Kind: Properties, PropertyIDs: ids, UserID: p.ID}, nil
	case RoleStaff:
		ids, err := r.repo.PropertyIDsByStaff(ctx, p.ID)
		if err != nil {
			return Scope{}, err
		}
		return Scope{Kind: Properties, PropertyIDs: ids, UserID: p.ID}, nil
	case RoleTenant:
		return Scope{Kind: TenantSelf, UserID: p.ID}, nil
	case RoleGuest:
		return Scope{Kind: NoAccess, UserID: p.ID}, nil
	default:
		return Scope{}, ErrUnknownRole
	}
}
