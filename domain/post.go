package domain

import (
	"time"

	"gorm.io/gorm"
)

// Post is a single blog entry. The author is mandatory and deleting the author
// deletes their posts. The group is optional and deleting a group only clears
// the reference on its posts. PubDate is set once at creation and never
// updated afterwards. Image holds the relative path of an attached picture
// inside the media directory, or the empty string.
type Post struct {
	ID       int       `json:"id"`
	Text     string    `json:"text" gorm:"notNull"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
	AuthorID int       `json:"-" gorm:"notNull;index"`
	Author   User      `json:"author" gorm:"constraint:OnDelete:CASCADE"`
	GroupID  *int      `json:"group_id,omitempty" gorm:"index"`
	Group    *Group    `json:"group,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Image    string    `json:"image"`

	Comments []Comment `json:"-" gorm:"foreignKey:PostID"`
}

// String returns the leading runes of the post's text, enough to identify it
// in listings and logs.
func (p Post) String() string {
	runes := []rune(p.Text)
	if len(runes) > 15 {
		runes = runes[:15]
	}
	return string(runes)
}

// BeforeUpdate keeps PubDate immutable once the record exists.
func (p *Post) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.Omit("PubDate")
	return nil
}

// PostService is a set of methods to manipulate and work with the Post model.
// All listing methods return posts newest first and fetch a bounded range,
// they never load the whole table.
type PostService interface {
	ByID(id int) (*Post, error)
	All(limit, offset int) ([]Post, error)
	Count() (int, error)
	ByGroupID(groupID, limit, offset int) ([]Post, error)
	CountByGroup(groupID int) (int, error)
	ByAuthorID(authorID, limit, offset int) ([]Post, error)
	CountByAuthor(authorID int) (int, error)
	// Feed lists posts written by authors the given user follows.
	Feed(userID, limit, offset int) ([]Post, error)
	CountFeed(userID int) (int, error)
	Create(post *Post) error
	Update(post *Post) error
}
