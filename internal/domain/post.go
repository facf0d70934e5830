package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// Post field constraints.
const PostTitleMaxLen = 200

// Common post validation errors.
var (
	ErrPostTitleEmpty   = errors.New("post title cannot be empty")
	ErrPostTitleTooLong = errors.New("post title must be at most 200 characters long")
	ErrPostAuthorEmpty  = errors.New("post must reference an author")
)

// Post represents a blog post. The author reference is required at creation
// and immutable afterwards; CreatedAt is likewise never updated.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPost creates a Post ready for insertion. The ID is assigned by the
// store. Returns a validation error if any field is out of bounds.
func NewPost(title, content string, published bool, userID int64) (*Post, error) {
	post := &Post{
		Title:     title,
		Content:   content,
		Published: published,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks the post's fields against the entity constraints.
func (p *Post) Validate() error {
	if p.Title == "" {
		return ErrPostTitleEmpty
	}
	if utf8.RuneCountInString(p.Title) > PostTitleMaxLen {
		return ErrPostTitleTooLong
	}
	if p.UserID <= 0 {
		return ErrPostAuthorEmpty
	}
	return nil
}

// PostWithAuthor is a post joined with its author's full record, used by the
// single-post read endpoint.
type PostWithAuthor struct {
	Post
	Author User `json:"author"`
}

// PostUpdate describes a partial update of a Post. The author cannot be
// reassigned, so UserID is deliberately absent.
type PostUpdate struct {
	Title     *string
	Content   *string
	Published *bool
}

// IsZero reports whether the update carries no changes.
func (p PostUpdate) IsZero() bool {
	return p.Title == nil && p.Content == nil && p.Published == nil
}

// Apply merges the supplied fields onto the post. Only fields explicitly
// present in the update are assigned.
func (p PostUpdate) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Published != nil {
		post.Published = *p.Published
	}
}

// Validate checks the supplied fields only.
func (p PostUpdate) Validate() error {
	if p.Title != nil {
		if *p.Title == "" {
			return ErrPostTitleEmpty
		}
		if utf8.RuneCountInString(*p.Title) > PostTitleMaxLen {
			return ErrPostTitleTooLong
		}
	}
	return nil
}
