package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"goblog/auth"
	"goblog/domain"
	"goblog/errs"
)

func (s *Server) registerPostRoutes(r *mux.Router) {
	r.HandleFunc("/", s.cached(s.handleIndex)).Methods("GET")
	r.HandleFunc("/create/", s.requireAuth(s.handlePostCreate)).Methods("GET", "POST")
	r.HandleFunc("/posts/{id:[0-9]+}/", s.handlePostDetail).Methods("GET")
	r.HandleFunc("/posts/{id:[0-9]+}/edit/", s.requireAuth(s.handlePostEdit)).Methods("GET", "POST")
	r.HandleFunc("/posts/{id:[0-9]+}/comment/", s.requireAuth(s.handleAddComment)).Methods("POST")
}

// handleIndex lists all posts, newest first, paginated. The whole rendered
// page is cached for a short interval by the cached middleware wrapping it.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := s.postPage(r, s.ps.Count, s.ps.All)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.render(w, r, "index.html", map[string]interface{}{
		"Page":  page,
		"Index": true,
	})
}

// handlePostDetail shows a single post with all its comments, the author's
// total post count and an inline comment form.
func (s *Server) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	post, ok := s.resolvePost(w, r)
	if !ok {
		return
	}
	comments, err := s.cs.ByPostID(post.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	postCount, err := s.ps.CountByAuthor(post.AuthorID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.render(w, r, "post_detail.html", map[string]interface{}{
		"Post":      post,
		"Comments":  comments,
		"PostCount": postCount,
		"Form":      &CommentForm{Errors: map[string]string{}},
	})
}

// handlePostCreate renders the post form and, on submit, validates it and
// stores the new post with the current user as author. A failed validation
// re-renders the form with field errors and persists nothing.
func (s *Server) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.renderPostForm(w, r, &PostForm{Errors: map[string]string{}}, nil)
		return
	}

	form, err := parsePostForm(r)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if !form.validate(s.gs) {
		s.renderPostForm(w, r, form, nil)
		return
	}

	imagePath, ok := s.saveFormImage(w, r, form, nil)
	if !ok {
		return
	}

	user := auth.GetUser(r.Context())
	post := domain.Post{
		Text:     form.Text,
		GroupID:  form.GroupID,
		AuthorID: user.ID,
		Image:    imagePath,
	}
	if err := s.ps.Create(&post); err != nil {
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", user.Username), http.StatusFound)
}

// handlePostEdit lets the author change a post's text, group and image.
// Anyone else is silently redirected to the post's detail page.
func (s *Server) handlePostEdit(w http.ResponseWriter, r *http.Request) {
	post, ok := s.resolvePost(w, r)
	if !ok {
		return
	}
	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	user := auth.GetUser(r.Context())
	if post.AuthorID != user.ID {
		http.Redirect(w, r, detailURL, http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		form := &PostForm{
			Text:    post.Text,
			GroupID: post.GroupID,
			Errors:  map[string]string{},
		}
		s.renderPostForm(w, r, form, post)
		return
	}

	form, err := parsePostForm(r)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if !form.validate(s.gs) {
		s.renderPostForm(w, r, form, post)
		return
	}

	imagePath, ok := s.saveFormImage(w, r, form, post)
	if !ok {
		return
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	if imagePath != "" {
		// A replaced image file would be orphaned on disk otherwise.
		if post.Image != "" {
			if err := s.is.Delete(post.Image); err != nil {
				s.errorLog.Println(err)
			}
		}
		post.Image = imagePath
	}
	if err := s.ps.Update(post); err != nil {
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, detailURL, http.StatusFound)
}

// handleAddComment attaches a comment to a post. The author and the post are
// taken from the session and the URL, never from the form. An invalid comment
// is dropped without feedback, the user lands back on the detail page either
// way. A missing post is a hard 404.
func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	post, ok := s.resolvePost(w, r)
	if !ok {
		return
	}
	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	form := parseCommentForm(r)
	if form.validate() {
		user := auth.GetUser(r.Context())
		comment := domain.Comment{
			PostID:   post.ID,
			AuthorID: user.ID,
			Text:     form.Text,
		}
		if err := s.cs.Create(&comment); err != nil && errs.ErrorCode(err) != errs.EINVALID {
			s.serverError(w, err)
			return
		}
	}
	http.Redirect(w, r, detailURL, http.StatusFound)
}

// resolvePost parses the post id out of the URL and fetches the post,
// answering 404 when it does not exist.
func (s *Server) resolvePost(w http.ResponseWriter, r *http.Request) (*domain.Post, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		s.notFound(w, r)
		return nil, false
	}
	post, err := s.ps.ByID(id)
	if err != nil {
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			s.notFound(w, r)
		} else {
			s.serverError(w, err)
		}
		return nil, false
	}
	return post, true
}

// renderPostForm renders the create/edit form with the group choices loaded.
// A non-nil post means the form edits that post.
func (s *Server) renderPostForm(w http.ResponseWriter, r *http.Request, form *PostForm, post *domain.Post) {
	groups, err := s.gs.All()
	if err != nil {
		s.serverError(w, err)
		return
	}
	data := map[string]interface{}{
		"Form":   form,
		"Groups": groups,
	}
	if post != nil {
		data["IsEdit"] = true
		data["Post"] = post
	}
	s.render(w, r, "create_post.html", data)
}

// saveFormImage stores the form's image, if one was uploaded. An invalid
// image turns into a field error and re-renders the form; nothing is
// persisted in that case. The returned bool reports whether the caller
// should continue.
func (s *Server) saveFormImage(w http.ResponseWriter, r *http.Request, form *PostForm, post *domain.Post) (string, bool) {
	if form.Image == nil {
		return "", true
	}
	defer form.Image.File.Close()
	path, err := s.is.Create(form.Image)
	if err != nil {
		if errs.ErrorCode(err) == errs.EINVALID {
			form.Errors["image"] = errs.ErrorMessage(err)
			s.renderPostForm(w, r, form, post)
		} else {
			s.serverError(w, err)
		}
		return "", false
	}
	return path, true
}
