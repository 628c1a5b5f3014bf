package service

import "errors"

// Sentinel errors for the business-rule layer. Handlers map these onto
// the HTTP taxonomy: validation 400, unauthenticated 401, forbidden 403,
// not found 404, conflict 409, delivery failure 502.
var (
	ErrForbidden = errors.New("insufficient privilege")

	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")

	ErrUsernameInUse  = errors.New("username already in use")
	ErrEmailInUse     = errors.New("email already in use")
	ErrSlugInUse      = errors.New("slug already in use")
	ErrTitleNameInUse = errors.New("title name already in use")
	ErrReviewExists   = errors.New("you have already reviewed this title")

	ErrEmailRegistered = errors.New("user with this email is already registered and active")
	ErrInvalidCode     = errors.New("invalid or expired confirmation code")
	ErrInvalidToken    = errors.New("invalid token")
	ErrMailDelivery    = errors.New("could not deliver the confirmation email")
)
