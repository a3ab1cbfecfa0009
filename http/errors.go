package http

import "net/http"

// notFound renders a plain 404 response.
func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}

// serverError logs the underlying error and renders a plain 500 response.
func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.errorLog.Println(err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
