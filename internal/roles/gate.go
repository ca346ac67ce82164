package roles

import (
	"errors"
	"fmt"
)

// AuthorizeRoleChange checks that actor may give target to another account.
//
// The city-admin/general-admin case is checked by name before the set lookup
// even though AvailableRoles already excludes it; both checks stay.
func AuthorizeRoleChange(actor, target Role) error {
	if actor == AdminCidade && target == AdminGeral {
		return deny(ForbiddenTarget, msgCityAdminToGeneral)
	}
	available := AvailableRoles(actor)
	if len(available) == 0 {
		return deny(InsufficientRole, msgNoAssignRights)
	}
	if !available.Contains(target) {
		return deny(ForbiddenTarget, fmt.Sprintf(msgCannotAssignRole, target))
	}
	return nil
}

// AuthorizeDelete checks that actor may remove an account whose type is target.
func AuthorizeDelete(actor, target Role) error {
	if !actor.IsAdmin() {
		return deny(InsufficientRole, msgNoDeleteRights)
	}
	if target == AdminGeral && actor != AdminGeral {
		return deny(ForbiddenTarget, msgCannotDeleteAdmin)
	}
	return nil
}

// AuthorizeCity checks that actor may manage an account registered in
// targetCity. A city admin is limited to its own city; other roles are not
// restricted here.
func AuthorizeCity(actor Role, actorCity, targetCity *string) error {
	if actor != AdminCidade {
		return nil
	}
	if actorCity == nil || targetCity == nil || *actorCity != *targetCity {
		return deny(ForbiddenTarget, msgOtherCity)
	}
	return nil
}

// AuthorizeRoleChangeFor is AuthorizeRoleChange for a possibly unknown actor;
// nil means nobody is signed in.
func AuthorizeRoleChangeFor(actor *Role, target Role) error {
	if actor == nil {
		return deny(NotAuthenticated, msgNotAuthenticated)
	}
	return AuthorizeRoleChange(*actor, target)
}

// AuthorizeDeleteFor is AuthorizeDelete for a possibly unknown actor.
func AuthorizeDeleteFor(actor *Role, target Role) error {
	if actor == nil {
		return deny(NotAuthenticated, msgNotAuthenticated)
	}
	return AuthorizeDelete(*actor, target)
}

// AsPermissionError unwraps err into a *PermissionError when it is one.
func AsPermissionError(err error) (*PermissionError, bool) {
	var pe *PermissionError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AuthorizeSelfAssign checks the account type a user picks for their own profile.
func AuthorizeSelfAssign(r Role) error {
	if !SelfAssignable(r) {
		return deny(ForbiddenTarget, fmt.Sprintf(msgCannotAssignRole, r))
	}
	return nil
}

// AuthorizeAdmin checks that actor may act on accounts other than its own.
func AuthorizeAdmin(actor Role) error {
	if !actor.IsAdmin() {
		return deny(InsufficientRole, msgAdminOnly)
	}
	return nil
}

// AuthorizeSelf checks that actorID is the owner of the record keyed by ownerID.
func AuthorizeSelf(actorID, ownerID string) error {
	if actorID == "" {
		return deny(NotAuthenticated, msgNotAuthenticated)
	}
	if actorID != ownerID {
		return deny(ForbiddenTarget, msgNotOwner)
	}
	return nil
}

// RequireActor fails with NotAuthenticated when actor is nil.
func RequireActor(actor *Role) error {
	if actor == nil {
		return deny(NotAuthenticated, msgNotAuthenticated)
	}
	return nil
}
