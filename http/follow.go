package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"goblog/auth"
	"goblog/domain"
)

func (s *Server) registerFollowRoutes(r *mux.Router) {
	r.HandleFunc("/follow/", s.requireAuth(s.handleFollowIndex)).Methods("GET")
	r.HandleFunc("/profile/{username}/follow/", s.requireAuth(s.handleProfileFollow)).Methods("GET")
	r.HandleFunc("/profile/{username}/unfollow/", s.requireAuth(s.handleProfileUnfollow)).Methods("GET")
}

// handleFollowIndex lists the current user's feed: posts authored by anyone
// they follow, paginated, newest first.
func (s *Server) handleFollowIndex(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	page, err := s.postPage(r,
		func() (int, error) { return s.ps.CountFeed(user.ID) },
		func(limit, offset int) ([]domain.Post, error) { return s.ps.Feed(user.ID, limit, offset) },
	)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.render(w, r, "follow.html", map[string]interface{}{
		"Page":   page,
		"Follow": true,
	})
}

// handleProfileFollow makes the current user follow the target author.
// Following is idempotent, following again changes nothing. Following
// yourself is a silent no-op. The user lands on the target's profile
// regardless of outcome.
func (s *Server) handleProfileFollow(w http.ResponseWriter, r *http.Request) {
	author, ok := s.resolveAuthor(w, r)
	if !ok {
		return
	}
	user := auth.GetUser(r.Context())
	if user.ID != author.ID {
		if err := s.fs.Follow(user.ID, author.ID); err != nil {
			s.errorLog.Println(err)
		}
	}
	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", author.Username), http.StatusFound)
}

// handleProfileUnfollow removes the current user's follow of the target
// author, if any, and redirects to the target's profile.
func (s *Server) handleProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	author, ok := s.resolveAuthor(w, r)
	if !ok {
		return
	}
	user := auth.GetUser(r.Context())
	if err := s.fs.Unfollow(user.ID, author.ID); err != nil {
		s.errorLog.Println(err)
	}
	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", author.Username), http.StatusFound)
}
