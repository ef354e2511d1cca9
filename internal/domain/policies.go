package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// BusinessPolicy is a stateless predicate consulted by an aggregate before
// it mutates state.
type BusinessPolicy interface {
	IsInvalid() bool
	Message() string
}

// CheckPolicy converts a violated policy into a coded domain error.
func CheckPolicy(p BusinessPolicy) error {
	if p.IsInvalid() {
		return newError(ErrBusinessPolicyViolation, "%s", p.Message())
	}
	return nil
}

// CannotFriendSelf rejects a friendship edge from a user to itself.
type CannotFriendSelf struct {
	UserID   uuid.UUID
	FriendID uuid.UUID
}

func (p CannotFriendSelf) IsInvalid() bool {
	return p.UserID == p.FriendID
}

func (p CannotFriendSelf) Message() string {
	return fmt.Sprintf("user with id %s cannot add itself as a friend", p.UserID)
}

// CannotContributeToOwnWallet rejects a contribution by the wallet owner
// into their own wallet.
type CannotContributeToOwnWallet struct {
	OwnerID       uuid.UUID
	ContributorID uuid.UUID
}

func (p CannotContributeToOwnWallet) IsInvalid() bool {
	return p.OwnerID == p.ContributorID
}

func (p CannotContributeToOwnWallet) Message() string {
	return fmt.Sprintf("user with id %s cannot contribute to its own wallet", p.ContributorID)
}
