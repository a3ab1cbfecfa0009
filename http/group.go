package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"goblog/domain"
	"goblog/errs"
)

func (s *Server) registerGroupRoutes(r *mux.Router) {
	r.HandleFunc("/group/{slug}/", s.handleGroupPosts).Methods("GET")
}

// handleGroupPosts resolves a group by its slug and lists its posts,
// paginated, newest first. An unknown slug is a 404.
func (s *Server) handleGroupPosts(w http.ResponseWriter, r *http.Request) {
	group, err := s.gs.BySlug(mux.Vars(r)["slug"])
	if err != nil {
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			s.notFound(w, r)
		} else {
			s.serverError(w, err)
		}
		return
	}

	page, err := s.postPage(r,
		func() (int, error) { return s.ps.CountByGroup(group.ID) },
		func(limit, offset int) ([]domain.Post, error) { return s.ps.ByGroupID(group.ID, limit, offset) },
	)
	if err != nil {
		s.serverError(w, err)
		return
	}

	s.render(w, r, "group_list.html", map[string]interface{}{
		"Group": group,
		"Page":  page,
	})
}
