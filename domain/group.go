package domain

// Group is a topic that posts can be filed under. Groups are managed by
// administrators, there is no public handler that creates or edits them.
type Group struct {
	ID          int    `json:"id"`
	Title       string `json:"title" gorm:"size:200;notNull"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:18;notNull"`
	Description string `json:"description" gorm:"size:250"`

	Posts []Post `json:"-" gorm:"foreignKey:GroupID"`
}

func (g Group) String() string {
	return g.Title
}

// GroupService is a set of methods to manipulate and work with the Group model.
type GroupService interface {
	BySlug(slug string) (*Group, error)
	ByID(id int) (*Group, error)
	// All returns every group, most recently created first.
	All() ([]Group, error)
	Create(group *Group) error
}
