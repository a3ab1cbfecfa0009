package domain

import "time"

// Follow records that one user (UserID) receives another user's (AuthorID)
// posts in their feed. The pair is unique, a follow relationship exists at
// most once between any two users. Both sides cascade when the referenced
// user is deleted.
type Follow struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-" gorm:"notNull;index;uniqueIndex:idx_follows_user_author"`
	User      User      `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AuthorID  int       `json:"-" gorm:"notNull;index;uniqueIndex:idx_follows_user_author"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// FollowService is a set of methods to manipulate and work with the Follow model.
// Follow and Unfollow are idempotent, repeating either call leaves the same
// end state as a single call.
type FollowService interface {
	Follow(userID, authorID int) error
	Unfollow(userID, authorID int) error
	Following(userID, authorID int) bool
}
