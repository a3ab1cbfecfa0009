package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// registerMediaRoutes serves uploaded images straight from the media
// directory.
func (s *Server) registerMediaRoutes(r *mux.Router) {
	fileServer := http.FileServer(http.Dir(s.mediaDir))
	r.PathPrefix("/media/").Handler(http.StripPrefix("/media/", fileServer)).Methods("GET")
}
