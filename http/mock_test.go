package http

import (
	"sort"
	"sync"
	"time"

	"goblog/domain"
	"goblog/errs"
)

// fixture is an in-memory stand-in for the persistence layer. The fake
// services below all share one fixture, mirroring how the real crud services
// share one database connection.
type fixture struct {
	mu       sync.Mutex
	users    []domain.User
	groups   []domain.Group
	posts    []domain.Post
	comments []domain.Comment
	follows  []domain.Follow
	nextID   int
	clock    time.Time

	createdImages []string
	deletedImages []string
	// imageErr, when set, is returned by the image service's Create.
	imageErr error

	countByAuthorCalls int
}

func newFixture() *fixture {
	return &fixture{
		nextID: 1,
		clock:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) id() int {
	id := f.nextID
	f.nextID++
	return id
}

// tick advances the fixture clock so every created record gets a distinct,
// increasing timestamp.
func (f *fixture) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fixture) addUser(username string) *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := domain.User{
		ID:       f.id(),
		Username: username,
		Email:    username + "@example.com",
		Remember: "token-" + username,
	}
	f.users = append(f.users, user)
	return &user
}

func (f *fixture) addGroup(title, slug string) *domain.Group {
	f.mu.Lock()
	defer f.mu.Unlock()
	group := domain.Group{ID: f.id(), Title: title, Slug: slug}
	f.groups = append(f.groups, group)
	return &group
}

func (f *fixture) addPost(author *domain.User, groupID *int, text string) *domain.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	post := domain.Post{
		ID:       f.id(),
		Text:     text,
		PubDate:  f.tick(),
		AuthorID: author.ID,
		GroupID:  groupID,
	}
	f.posts = append(f.posts, post)
	return &post
}

func (f *fixture) addFollow(user, author *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.follows = append(f.follows, domain.Follow{ID: f.id(), UserID: user.ID, AuthorID: author.ID})
}

func (f *fixture) removePost(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return
		}
	}
}

func (f *fixture) userByID(id int) domain.User {
	for _, u := range f.users {
		if u.ID == id {
			return u
		}
	}
	return domain.User{}
}

func (f *fixture) groupByID(id int) *domain.Group {
	for _, g := range f.groups {
		if g.ID == id {
			group := g
			return &group
		}
	}
	return nil
}

// hydrate fills the relations the templates render.
func (f *fixture) hydrate(post domain.Post) domain.Post {
	post.Author = f.userByID(post.AuthorID)
	if post.GroupID != nil {
		post.Group = f.groupByID(*post.GroupID)
	}
	return post
}

// window sorts posts newest first and cuts the requested range.
func window(posts []domain.Post, limit, offset int) []domain.Post {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].PubDate.After(posts[j].PubDate)
	})
	if offset >= len(posts) {
		return nil
	}
	posts = posts[offset:]
	if limit < len(posts) {
		posts = posts[:limit]
	}
	return posts
}

type fakeUserService struct{ f *fixture }

var _ domain.UserService = &fakeUserService{}

func (s *fakeUserService) ByUsername(username string) (*domain.User, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for _, u := range s.f.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
}

func (s *fakeUserService) ByRemember(token string) (*domain.User, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for _, u := range s.f.users {
		if u.Remember == token {
			user := u
			return &user, nil
		}
	}
	return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
}

func (s *fakeUserService) Authenticate(email, password string) (*domain.User, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for _, u := range s.f.users {
		if u.Email == email && password == "correct horse" {
			user := u
			return &user, nil
		}
	}
	return nil, errs.Errorf(errs.EINVALID, "The email address or password is incorrect.")
}

func (s *fakeUserService) Create(user *domain.User) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	user.ID = s.f.id()
	if user.Remember == "" {
		user.Remember = "token-" + user.Username
	}
	s.f.users = append(s.f.users, *user)
	return nil
}

func (s *fakeUserService) Update(user *domain.User) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for i := range s.f.users {
		if s.f.users[i].ID == user.ID {
			s.f.users[i] = *user
			return nil
		}
	}
	return errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
}

type fakeGroupService struct{ f *fixture }

var _ domain.GroupService = &fakeGroupService{}

func (s *fakeGroupService) BySlug(slug string) (*domain.Group, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for _, g := range s.f.groups {
		if g.Slug == slug {
			group := g
			return &group, nil
		}
	}
	return nil, errs.Errorf(errs.ENOTFOUND, "The group does not exist.")
}

func (s *fakeGroupService) ByID(id int) (*domain.Group, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if group := s.f.groupByID(id); group != nil {
		return group, nil
	}
	return nil, errs.Errorf(errs.ENOTFOUND, "The group does not exist.")
}

func (s *fakeGroupService) All() ([]domain.Group, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	groups := make([]domain.Group, len(s.f.groups))
	copy(groups, s.f.groups)
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID > groups[j].ID })
	return groups, nil
}

func (s *fakeGroupService) Create(group *domain.Group) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	group.ID = s.f.id()
	s.f.groups = append(s.f.groups, *group)
	return nil
}

type fakePostService struct{ f *fixture }

var _ domain.PostService = &fakePostService{}

func (s *fakePostService) ByID(id int) (*domain.Post, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for _, p := range s.f.posts {
		if p.ID == id {
			post := s.f.hydrate(p)
			return &post, nil
		}
	}
	return nil, errs.Errorf(errs.ENOTFOUND, "The post does not exist.")
}

func (s *fakePostService) all() []domain.Post {
	posts := make([]domain.Post, 0, len(s.f.posts))
	for _, p := range s.f.posts {
		posts = append(posts, s.f.hydrate(p))
	}
	return posts
}

func (s *fakePostService) All(limit, offset int) ([]domain.Post, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	return window(s.all(), limit, offset), nil
}

func (s *fakePostService) Count() (int, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	return len(s.f.posts), nil
}

func (s *fakePostService) ByGroupID(groupID, limit, offset int) ([]domain.Post, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var posts []domain.Post
	for _, p := range s.all() {
		if p.GroupID != nil && *p.GroupID == groupID {
			posts = append(posts, p)
		}
	}
	return window(posts, limit, offset), nil
}

func (s *fakePostService) CountByGroup(groupID int) (int, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	count := 0
	for _, p := range s.f.posts {
		if p.GroupID != nil && *p.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

func (s *fakePostService) ByAuthorID(authorID, limit, offset int) ([]domain.Post, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var posts []domain.Post
	for _, p := range s.all() {
		if p.AuthorID == authorID {
			posts = append(posts, p)
		}
	}
	return window(posts, limit, offset), nil
}

func (s *fakePostService) CountByAuthor(authorID int) (int, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	s.f.countByAuthorCalls++
	count := 0
	for _, p := range s.f.posts {
		if p.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (s *fakePostService) followedAuthors(userID int) map[int]bool {
	followed := make(map[int]bool)
	for _, fl := range s.f.follows {
		if fl.UserID == userID {
			followed[fl.AuthorID] = true
		}
	}
	return followed
}

func (s *fakePostService) Feed(userID, limit, offset int) ([]domain.Post, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	followed := s.followedAuthors(userID)
	var posts []domain.Post
	for _, p := range s.all() {
		if followed[p.AuthorID] {
			posts = append(posts, p)
		}
	}
	return window(posts, limit, offset), nil
}

func (s *fakePostService) CountFeed(userID int) (int, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	followed := s.followedAuthors(userID)
	count := 0
	for _, p := range s.f.posts {
		if followed[p.AuthorID] {
			count++
		}
	}
	return count, nil
}

func (s *fakePostService) Create(post *domain.Post) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	post.ID = s.f.id()
	post.PubDate = s.f.tick()
	s.f.posts = append(s.f.posts, *post)
	return nil
}

func (s *fakePostService) Update(post *domain.Post) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for i := range s.f.posts {
		if s.f.posts[i].ID == post.ID {
			// PubDate stays what it was at creation.
			post.PubDate = s.f.posts[i].PubDate
			stored := *post
			stored.Author = domain.User{}
			stored.Group = nil
			s.f.posts[i] = stored
			return nil
		}
	}
	return errs.Errorf(errs.ENOTFOUND, "The post does not exist.")
}

type fakeCommentService struct{ f *fixture }

var _ domain.CommentService = &fakeCommentService{}

func (s *fakeCommentService) ByPostID(postID int) ([]domain.Comment, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var comments []domain.Comment
	for _, c := range s.f.comments {
		if c.PostID == postID {
			c.Author = s.f.userByID(c.AuthorID)
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].Created.After(comments[j].Created) })
	return comments, nil
}

func (s *fakeCommentService) Create(comment *domain.Comment) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	comment.ID = s.f.id()
	comment.Created = s.f.tick()
	s.f.comments = append(s.f.comments, *comment)
	return nil
}

type fakeFollowService struct{ f *fixture }

var _ domain.FollowService = &fakeFollowService{}

func (s *fakeFollowService) Follow(userID, authorID int) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for _, fl := range s.f.follows {
		if fl.UserID == userID && fl.AuthorID == authorID {
			return nil
		}
	}
	s.f.follows = append(s.f.follows, domain.Follow{ID: s.f.id(), UserID: userID, AuthorID: authorID})
	return nil
}

func (s *fakeFollowService) Unfollow(userID, authorID int) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for i, fl := range s.f.follows {
		if fl.UserID == userID && fl.AuthorID == authorID {
			s.f.follows = append(s.f.follows[:i], s.f.follows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeFollowService) Following(userID, authorID int) bool {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for _, fl := range s.f.follows {
		if fl.UserID == userID && fl.AuthorID == authorID {
			return true
		}
	}
	return false
}

type fakeImageService struct{ f *fixture }

var _ domain.ImageService = &fakeImageService{}

func (s *fakeImageService) Create(img *domain.Image) (string, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if s.f.imageErr != nil {
		return "", s.f.imageErr
	}
	path := "posts/" + img.Filename
	s.f.createdImages = append(s.f.createdImages, path)
	return path, nil
}

func (s *fakeImageService) Delete(relPath string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	s.f.deletedImages = append(s.f.deletedImages, relPath)
	return nil
}
