package domain

import (
	"errors"
	"regexp"
	"time"
	"unicode/utf8"
)

// User field constraints.
const (
	UserNameMaxLen  = 100
	UserEmailMaxLen = 255
)

// Common user validation errors.
var (
	ErrUserNameEmpty   = errors.New("user name cannot be empty")
	ErrUserNameTooLong = errors.New("user name must be at most 100 characters long")
	ErrEmptyEmail      = errors.New("email cannot be empty")
	ErrEmailTooLong    = errors.New("email must be at most 255 characters long")
)

// emailPattern mirrors the pattern enforced at the API boundary: a local
// part, an @, and a domain containing at least one dot.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// User represents a registered user. A user owns zero or more posts;
// ownership is modeled one-directionally through Post.UserID.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// NewUser creates a User ready for insertion. The ID is assigned by the
// store; CreatedAt is stamped here and UpdatedAt stays nil until the first
// update. Returns a validation error if any field is out of bounds.
func NewUser(name, email string, isActive bool) (*User, error) {
	user := &User{
		Name:      name,
		Email:     email,
		IsActive:  isActive,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the user's fields against the entity constraints.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrUserNameEmpty
	}
	if utf8.RuneCountInString(u.Name) > UserNameMaxLen {
		return ErrUserNameTooLong
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if utf8.RuneCountInString(u.Email) > UserEmailMaxLen {
		return ErrEmailTooLong
	}
	if !emailPattern.MatchString(u.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// UserUpdate describes a partial update of a User. Nil fields are left
// untouched; set fields replace the stored values.
type UserUpdate struct {
	Name     *string
	Email    *string
	IsActive *bool
}

// IsZero reports whether the update carries no changes.
func (p UserUpdate) IsZero() bool {
	return p.Name == nil && p.Email == nil && p.IsActive == nil
}

// Apply merges the supplied fields onto the user and stamps UpdatedAt.
// Only fields explicitly present in the update are assigned; everything
// else keeps its previous value.
func (p UserUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	now := time.Now().UTC()
	u.UpdatedAt = &now
}

// Validate checks the supplied fields only.
func (p UserUpdate) Validate() error {
	if p.Name != nil {
		if *p.Name == "" {
			return ErrUserNameEmpty
		}
		if utf8.RuneCountInString(*p.Name) > UserNameMaxLen {
			return ErrUserNameTooLong
		}
	}
	if p.Email != nil {
		if *p.Email == "" {
			return ErrEmptyEmail
		}
		if utf8.RuneCountInString(*p.Email) > UserEmailMaxLen {
			return ErrEmailTooLong
		}
		if !emailPattern.MatchString(*p.Email) {
			return ErrInvalidEmail
		}
	}
	return nil
}

// UserPostCount is one row of the posts-per-user aggregate: the user's
// identity plus the number of posts they own (zero included).
type UserPostCount struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	PostCount int64  `json:"post_count"`
}
