// Package permission holds the pure authorization predicates for the API.
// Every decision is a function of (actor, action class, resource ownership);
// nothing in here touches the database or the request context, so route
// middleware and services can evaluate the same rules at different points
// of a request without drift.
package permission

import "reviewhub/internal/api/models"

// Role is the closed set of privilege levels a user can hold.
type Role string

const (
	RoleUser      Role = models.RoleUser
	RoleModerator Role = models.RoleModerator
	RoleAdmin     Role = models.RoleAdmin
)

// rank orders roles by privilege: user < moderator < admin.
// Unknown roles rank below user so a corrupted column never grants anything.
var rank = map[Role]int{
	RoleUser:      1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

func (r Role) Valid() bool {
	_, ok := rank[r]
	return ok
}

// AtLeast reports whether r carries at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return rank[r] >= rank[other]
}

// Actor is the identity attached to a request. The zero value is the
// anonymous actor.
type Actor struct {
	ID            string
	Username      string
	Role          Role
	Staff         bool // staff flag is equivalent to admin
	Authenticated bool
}

// Anonymous is the actor used for requests without credentials.
var Anonymous = Actor{}

func FromUser(u *models.User) Actor {
	return Actor{
		ID:            u.ID,
		Username:      u.Username,
		Role:          Role(u.Role),
		Staff:         u.IsStaff,
		Authenticated: true,
	}
}

// IsAdmin reports admin privilege, counting the staff flag.
func (a Actor) IsAdmin() bool {
	return a.Authenticated && (a.Staff || a.Role.AtLeast(RoleAdmin))
}

// CanManageCatalog gates writes on categories, genres and titles.
// Reads are always public and never consult this.
func CanManageCatalog(a Actor) bool {
	return a.IsAdmin()
}

// CanManageUsers gates the /users administration surface.
func CanManageUsers(a Actor) bool {
	return a.IsAdmin()
}

// CanModerate reports whether the actor may act on other users' reviews
// and comments.
func CanModerate(a Actor) bool {
	return a.Authenticated && (a.Staff || a.Role.AtLeast(RoleModerator))
}

// CanCreateContent gates review and comment creation: any authenticated
// actor may post.
func CanCreateContent(a Actor) bool {
	return a.Authenticated
}

// CanEditContent is the object-level check for updating or deleting a
// review or comment owned by authorID.
func CanEditContent(a Actor, authorID string) bool {
	if !a.Authenticated {
		return false
	}
	return a.ID == authorID || CanModerate(a)
}
