package domain

import "time"

// Comment belongs to exactly one post and one author. Both references cascade,
// deleting the post or the author removes the comment. Created is set once at
// creation.
type Comment struct {
	ID       int       `json:"id"`
	PostID   int       `json:"-" gorm:"notNull;index"`
	Post     Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID int       `json:"-" gorm:"notNull;index"`
	Author   User      `json:"author" gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"notNull"`
	Created  time.Time `json:"created" gorm:"autoCreateTime"`
}

func (c Comment) String() string {
	return c.Text
}

// CommentService is a set of methods to manipulate and work with the Comment model.
type CommentService interface {
	// ByPostID returns all comments of a post, newest first.
	ByPostID(postID int) ([]Comment, error)
	Create(comment *Comment) error
}
