package access

import "gorm.io/gorm"

type Kind int

const (
	// Unrestricted sees and edits everything (admin).
	Unrestricted Kind = iota
	// Properties limits visibility to a set of property IDs (owner, staff).
	Properties
	// TenantSelf limits visibility to records owned by the principal's user id.
	TenantSelf
	// NoAccess has no property-scoped visibility at all (guest).
	NoAccess
)

// Scope is the subset of entities a principal may read or write. It is
// resolved once per request and applied uniformly to every list, detail and
// mutate operation.
type Scope struct {
	Kind        Kind
	PropertyIDs []string
	UserID      string
}

func (s Scope) AllowsProperty(propertyID string) bool {
	switch s.Kind {
	case Unrestricted:
		return true
	case Properties:
		for _, id := range s.PropertyIDs {
			if id == propertyID {
				return true
			}
		}
	}
	return false
}

func (s Scope) AllowsUser(userID string) bool {
	switch s.Kind {
	case Unrestricted:
		return true
	case TenantSelf:
		return s.UserID == userID
	}
	return false
}

// Manages reports whether the scope carries owner/staff style property
// management rights.
func (s Scope) Manages() bool {
	return s.Kind == Unrestricted || s.Kind == Properties
}

// Predicate builds a GORM scope narrowing a query to rows the principal may
// see. propertyColumn and userColumn name the (qualified) columns holding the
// row's property id and owning user id; either may be empty when the entity
// has no such column, in which case that scope kind sees nothing.
func (s Scope) Predicate(propertyColumn, userColumn string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch s.Kind {
		case Unrestricted:
			return db
		case Properties:
			if propertyColumn == "" {
				return db.Where("1 = 0")
			}
			return db.Where(propertyColumn+" IN ?", s.propertyIDsOrNone())
		case TenantSelf:
			if userColumn == "" {
				return db.Where("1 = 0")
			}
			return db.Where(userColumn+" = ?", s.UserID)
		default:
			return db.Where("1 = 0")
		}
	}
}

// An empty IN list would match nothing but generates invalid SQL in some
// dialects, so feed it an impossible value instead.
func (s Scope) propertyIDsOrNone() []string {
	if len(s.PropertyIDs) == 0 {
		return []string{"00000000-0000-0000-0000-000000000000"}
	}
	return s.PropertyIDs
}
