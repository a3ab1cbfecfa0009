package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"goblog/auth"
	"goblog/domain"
	"goblog/errs"
)

func (s *Server) registerAuthRoutes(r *mux.Router) {
	r.HandleFunc("/auth/signup/", s.handleSignup).Methods("GET", "POST")
	r.HandleFunc("/auth/login/", s.handleLogin).Methods("GET", "POST")
	r.HandleFunc("/auth/logout/", s.requireAuth(s.handleLogout)).Methods("POST")
}

// handleSignup renders the signup form and creates a new user on submit.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, r, "signup.html", map[string]interface{}{
			"Error":    "",
			"Username": "",
			"Email":    "",
		})
		return
	}

	user := domain.User{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := s.us.Create(&user); err != nil {
		if errs.ErrorCode(err) == errs.EINVALID {
			s.render(w, r, "signup.html", map[string]interface{}{
				"Error":    errs.ErrorMessage(err),
				"Username": user.Username,
				"Email":    user.Email,
			})
			return
		}
		s.serverError(w, err)
		return
	}
	s.signIn(w, &user)
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleLogin renders the login form and authenticates the user on submit.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, r, "login.html", map[string]interface{}{
			"Error": "",
			"Email": "",
		})
		return
	}

	user, err := s.us.Authenticate(r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if errs.ErrorCode(err) == errs.EINVALID {
			s.render(w, r, "login.html", map[string]interface{}{
				"Error": errs.ErrorMessage(err),
				"Email": r.PostFormValue("email"),
			})
			return
		}
		s.serverError(w, err)
		return
	}
	if err := s.signIn(w, user); err != nil {
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleLogout rotates the user's remember token, so that existing cookies
// become worthless, and clears the cookie on the client.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	token, err := auth.MakeRememberToken()
	if err != nil {
		s.serverError(w, err)
		return
	}
	user.Remember = token
	if err := s.us.Update(user); err != nil {
		s.serverError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "remember_token",
		Value:    "",
		Expires:  time.Now(),
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// signIn stores the user's remember token in a cookie. A token is generated
// first if the user does not carry one yet.
func (s *Server) signIn(w http.ResponseWriter, user *domain.User) error {
	if user.Remember == "" {
		token, err := auth.MakeRememberToken()
		if err != nil {
			return err
		}
		user.Remember = token
		if err := s.us.Update(user); err != nil {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "remember_token",
		Value:    user.Remember,
		HttpOnly: true,
	})
	return nil
}

// checkUser looks up the current user by the remember token cookie and, if
// found, stores it in the request context. Anonymous requests pass through
// untouched.
func (s *Server) checkUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("remember_token")
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.us.ByRemember(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		r = r.WithContext(auth.SetUser(r.Context(), user))
		next.ServeHTTP(w, r)
	})
}

// requireAuth redirects anonymous requests to the login page. It assumes the
// checkUser middleware has already run.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth.GetUser(r.Context()) == nil {
			http.Redirect(w, r, "/auth/login/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	}
}
