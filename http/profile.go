package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"goblog/auth"
	"goblog/domain"
	"goblog/errs"
)

func (s *Server) registerProfileRoutes(r *mux.Router) {
	r.HandleFunc("/profile/{username}/", s.handleProfile).Methods("GET")
}

// handleProfile shows an author's page: their posts (paginated), their total
// post count, and whether the current user follows them. Following is always
// false for anonymous visitors and for the author's own profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	author, ok := s.resolveAuthor(w, r)
	if !ok {
		return
	}

	postCount, err := s.ps.CountByAuthor(author.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	page, err := s.postPage(r,
		func() (int, error) { return postCount, nil },
		func(limit, offset int) ([]domain.Post, error) { return s.ps.ByAuthorID(author.ID, limit, offset) },
	)
	if err != nil {
		s.serverError(w, err)
		return
	}

	following := false
	if user := auth.GetUser(r.Context()); user != nil && user.ID != author.ID {
		following = s.fs.Following(user.ID, author.ID)
	}

	s.render(w, r, "profile.html", map[string]interface{}{
		"Author":    author,
		"Page":      page,
		"PostCount": postCount,
		"Following": following,
	})
}

// resolveAuthor parses the username out of the URL and fetches the user,
// answering 404 when they do not exist.
func (s *Server) resolveAuthor(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	author, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			s.notFound(w, r)
		} else {
			s.serverError(w, err)
		}
		return nil, false
	}
	return author, true
}
