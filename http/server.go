package http

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"

	"goblog/cache"
	"goblog/domain"
)

// Server provides the http functionality of the app: routing, request
// handling and middleware. It performs authentication and authorization
// before handing things over to one of the crud services, and renders the
// resulting page through the template renderer.
type Server struct {
	router  *mux.Router
	handler http.Handler

	infoLog  *log.Logger
	errorLog *log.Logger

	us domain.UserService
	gs domain.GroupService
	ps domain.PostService
	cs domain.CommentService
	fs domain.FollowService
	is domain.ImageService

	pageCache *cache.PageCache
	pageSize  int
	mediaDir  string
}

// ServerConfig carries the http-level settings a Server needs.
type ServerConfig struct {
	IsProd   bool
	PageSize int
	// CacheTTL bounds how long the rendered index page is replayed.
	CacheTTL time.Duration
	MediaDir string
	CSRFKey  string
	// DisableCSRF turns the CSRF middleware off. Only tests do this.
	DisableCSRF bool
}

// NewServer returns a new instance of the server, registers all routes and
// gives their handlers access to the services passed in.
func NewServer(
	cfg ServerConfig,
	us domain.UserService,
	gs domain.GroupService,
	ps domain.PostService,
	cs domain.CommentService,
	fs domain.FollowService,
	is domain.ImageService,
) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		infoLog:   log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime),
		errorLog:  log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile),
		us:        us,
		gs:        gs,
		ps:        ps,
		cs:        cs,
		fs:        fs,
		is:        is,
		pageCache: cache.NewPageCache(cfg.CacheTTL),
		pageSize:  cfg.PageSize,
		mediaDir:  cfg.MediaDir,
	}

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)

	// Register routes of the blog itself.
	s.registerPostRoutes(s.router)
	s.registerGroupRoutes(s.router)
	s.registerProfileRoutes(s.router)
	s.registerFollowRoutes(s.router)
	s.registerMediaRoutes(s.router)

	// Set up middleware that needs to run on every request. The user lookup
	// runs first so that every handler sees the current user (or nil) in the
	// request context.
	s.router.Use(s.checkUser)

	s.handler = s.router
	if !cfg.DisableCSRF {
		csrfMw := csrf.Protect([]byte(cfg.CSRFKey), csrf.Secure(cfg.IsProd), csrf.Path("/"))
		s.handler = csrfMw(s.router)
	}
	return s
}

// ServeHTTP makes the Server usable as an http.Handler, with the full
// middleware chain applied.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Cache exposes the page cache, so that a caller mutating data directly can
// force fresh reads.
func (s *Server) Cache() *cache.PageCache {
	return s.pageCache
}

// Run starts to listen and serve on the specified address.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:     addr,
		ErrorLog: s.errorLog,
		Handler:  s,

		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	s.infoLog.Printf("Starting server on %s", addr)
	return srv.ListenAndServe()
}
