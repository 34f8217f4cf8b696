package domain

import "github.com/threadboard/threadboard/shared/errors"

// Owned is implemented by records that only their author may mutate.
type Owned interface {
	Owner() UserId
}

// Authorize allows the mutation iff actor is the owner. There is no role
// hierarchy and no admin override.
func Authorize(actor, owner UserId) error {
	if actor != owner {
		return errors.ErrForbidden
	}
	return nil
}

func AuthorizeOwner(actor UserId, record Owned) error {
	return Authorize(actor, record.Owner())
}
