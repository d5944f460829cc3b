// Package authz holds the single membership predicate shared by every
// resource handler. Role gating lives in the middleware package; this check
// runs after it, against a loaded resource.
package authz

import (
	"github.com/crewdesk/crewdesk/internal/domain"
)

// CanAccess reports whether the principal may touch the resource: admins
// always can, everyone else must appear in the resource's member set.
func CanAccess(p domain.Principal, res domain.Owned) bool {
	if p.IsAdmin() {
		return true
	}
	for _, id := range res.MemberIDs() {
		if id == p.UserID {
			return true
		}
	}
	return false
}

// RequireMember returns domain.ErrForbidden when CanAccess denies.
func RequireMember(p domain.Principal, res domain.Owned) error {
	if !CanAccess(p, res) {
		return domain.ErrForbidden
	}
	return nil
}

// IsOrganizer reports whether the principal may mutate a resource whose
// writes are restricted to a single owner (admins included).
func IsOrganizer(p domain.Principal, ownerID string) bool {
	return p.IsAdmin() || p.UserID == ownerID
}
