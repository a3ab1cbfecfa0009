package http

import (
	"bytes"
	"net/http"
)

// cacheWriter tees the response body into a buffer so that a successful
// render can be stored in the page cache.
type cacheWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *cacheWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *cacheWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// cached serves the handler's response from the page cache, keyed by request
// URI, for the configured interval. Within that window the previously
// rendered bytes are replayed even if the underlying data has changed.
// Concurrent misses may populate the cache redundantly, the last write wins.
func (s *Server) cached(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.RequestURI()
		if body, contentType, ok := s.pageCache.Get(key); ok {
			w.Header().Set("Content-Type", contentType)
			w.Write(body)
			return
		}
		cw := &cacheWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(cw, r)
		if cw.status == http.StatusOK {
			s.pageCache.Set(key, cw.buf.Bytes(), cw.Header().Get("Content-Type"))
		}
	}
}
