// Package actor carries the identity and permissions of whoever invokes a
// mutating finance operation. Services receive it as an explicit argument
// instead of reading request or session state.
package actor

import (
	"slices"

	apperrors "posfinance/internal/errors"
)

// Permission names checked by the services.
const (
	PermCategoriesWrite = "categories.write"
	PermBudgetsWrite    = "budgets.write"
	PermReportsRead     = "reports.read"
	PermAll             = "*"
)

// Actor is the authenticated caller.
type Actor struct {
	UserID      string   `json:"user_id"`
	Permissions []string `json:"permissions"`
}

// Can reports whether the actor holds perm, directly or through PermAll.
func (a Actor) Can(perm string) bool {
	return slices.Contains(a.Permissions, perm) || slices.Contains(a.Permissions, PermAll)
}

// Require returns ErrUnauthorized for an anonymous actor and ErrForbidden
// when perm is missing.
func (a Actor) Require(perm string) error {
	if a.UserID == "" {
		return apperrors.ErrUnauthorized
	}
	if !a.Can(perm) {
		return apperrors.WithMessage(apperrors.ErrForbidden, "missing permission "+perm)
	}
	return nil
}
