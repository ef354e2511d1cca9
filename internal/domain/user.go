package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	fullNameMinLength = 2
	fullNameMaxLength = 100
)

// ParseFullName validates and normalizes a display name: trimmed, not
// blank, between 2 and 100 characters.
func ParseFullName(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || len(trimmed) < fullNameMinLength || len(trimmed) > fullNameMaxLength {
		return "", newError(ErrInvalidFullNameFormat, "full name %q format is invalid", value)
	}
	return trimmed, nil
}

// Friendship is one directed edge from a user to a friend. The edge is
// owned by the user whose id is UserID; the Friend reference is non-owning.
// A mutual friendship is modeled as two edges, one per direction.
type Friendship struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Friend    *User
	CreatedOn time.Time
}

// User is the aggregate root for a member of the friendship graph.
type User struct {
	ID       uuid.UUID
	FullName string

	friendships []*Friendship

	CreatedBy string
	CreatedOn time.Time
}

// NewUser builds a user. The full name must already be validated via
// ParseFullName.
func NewUser(id uuid.UUID, fullName, createdBy string, createdOn time.Time) *User {
	return &User{
		ID:        id,
		FullName:  fullName,
		CreatedBy: createdBy,
		CreatedOn: createdOn,
	}
}

// AddFriend appends a single directed edge from the user to friend. The
// caller establishes mutuality by invoking AddFriend on both sides, one
// call per direction.
func (u *User) AddFriend(friend *User) error {
	if err := CheckPolicy(CannotFriendSelf{UserID: u.ID, FriendID: friend.ID}); err != nil {
		return err
	}
	for _, f := range u.friendships {
		if f.Friend.ID == friend.ID {
			return newError(ErrFriendAlreadyExists, "the user with id %s is already a friend", friend.ID)
		}
	}
	u.friendships = append(u.friendships, &Friendship{
		ID:        uuid.New(),
		UserID:    u.ID,
		Friend:    friend,
		CreatedOn: time.Now().UTC(),
	})
	return nil
}

// RemoveFriend drops the edge pointing at the given friend id. Removing an
// absent edge is a no-op. The reciprocal edge held by the friend is not
// touched; the caller removes both sides.
func (u *User) RemoveFriend(friendID uuid.UUID) {
	kept := u.friendships[:0]
	for _, f := range u.friendships {
		if f.Friend.ID != friendID {
			kept = append(kept, f)
		}
	}
	u.friendships = kept
}

// Friendships returns a copied view of the user's edges. The backing slice
// is never exposed.
func (u *User) Friendships() []*Friendship {
	out := make([]*Friendship, len(u.friendships))
	copy(out, u.friendships)
	return out
}

// AttachFriendship re-attaches a persisted edge when assembling the
// aggregate from storage. No policies run.
func (u *User) AttachFriendship(f *Friendship) {
	u.friendships = append(u.friendships, f)
}

// CommonFriends intersects both users' friend sets by friend id. Duplicates
// are impossible since duplicate edges are rejected at add time; order is
// unspecified.
func (u *User) CommonFriends(other *User) []*User {
	if len(u.friendships) == 0 || len(other.friendships) == 0 {
		return nil
	}
	mine := make(map[uuid.UUID]struct{}, len(u.friendships))
	for _, f := range u.friendships {
		mine[f.Friend.ID] = struct{}{}
	}
	var common []*User
	for _, f := range other.friendships {
		if _, ok := mine[f.Friend.ID]; ok {
			common = append(common, f.Friend)
		}
	}
	return common
}

// ConnectionList finds the shortest path from the user to target through
// the friendship graph, bounded by maxLevel hops, using breadth-first
// search by user id. The returned path starts at the user and ends at
// target inclusive; an unreachable target yields nil, which is a normal
// outcome rather than an error.
func (u *User) ConnectionList(target *User, maxLevel int) []*User {
	queue := []uuid.UUID{u.ID}
	// A node is enqueued at most once: the visited set is the parent map's
	// key set. The root's parent is uuid.Nil.
	parents := map[uuid.UUID]uuid.UUID{u.ID: uuid.Nil}
	levels := map[uuid.UUID]int{u.ID: 0}
	nodes := map[uuid.UUID]*User{u.ID: u}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if currentID == target.ID {
			return reconstructPath(parents, nodes, currentID)
		}

		level := levels[currentID]
		if level >= maxLevel {
			continue
		}

		for _, f := range nodes[currentID].friendships {
			friendID := f.Friend.ID
			if _, seen := parents[friendID]; seen {
				continue
			}
			parents[friendID] = currentID
			levels[friendID] = level + 1
			nodes[friendID] = f.Friend
			queue = append(queue, friendID)
		}
	}

	return nil
}

func reconstructPath(parents map[uuid.UUID]uuid.UUID, nodes map[uuid.UUID]*User, targetID uuid.UUID) []*User {
	var path []*User
	for id := targetID; id != uuid.Nil; id = parents[id] {
		path = append(path, nodes[id])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
