package http

import (
	"net/http"
	"strconv"
	"strings"

	"goblog/domain"
	"goblog/errs"
)

// PostForm holds the user-submitted fields for creating or editing a post.
// The author is never part of the form, handlers inject the current user.
type PostForm struct {
	Text    string
	GroupID *int
	Image   *domain.Image
	Errors  map[string]string
}

// CommentForm holds the single user-submitted comment field. Author and post
// are injected by the handler to prevent spoofing.
type CommentForm struct {
	Text   string
	Errors map[string]string
}

// parsePostForm reads the post fields out of the request. File uploads make
// the form multipart, plain edits may not be, so both encodings are accepted.
func parsePostForm(r *http.Request) (*PostForm, error) {
	if err := r.ParseMultipartForm(domain.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		return nil, errs.Errorf(errs.EINVALID, "The submitted form could not be parsed.")
	}

	form := &PostForm{
		Text:   r.PostFormValue("text"),
		Errors: make(map[string]string),
	}

	if raw := r.PostFormValue("group"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			form.Errors["group"] = "The selected group is invalid."
		} else {
			form.GroupID = &id
		}
	}

	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["image"]; len(files) > 0 {
			file, err := files[0].Open()
			if err != nil {
				return nil, err
			}
			form.Image = &domain.Image{
				File:     file,
				Filename: files[0].Filename,
			}
		}
	}
	return form, nil
}

// validate checks the form fields against the data model. Field errors are
// collected into the Errors map; an empty map means the form may be saved.
// The group reference is resolved through gs so a vanished group is rejected
// before anything is persisted.
func (f *PostForm) validate(gs domain.GroupService) bool {
	if strings.TrimSpace(f.Text) == "" {
		f.Errors["text"] = "The post text must not be empty."
	}
	if f.GroupID != nil && f.Errors["group"] == "" {
		if _, err := gs.ByID(*f.GroupID); err != nil {
			f.Errors["group"] = "The selected group does not exist."
		}
	}
	return len(f.Errors) == 0
}

// GroupSelected reports whether the form currently references the given
// group, which the template uses to preselect the choice.
func (f *PostForm) GroupSelected(id int) bool {
	return f.GroupID != nil && *f.GroupID == id
}

// parseCommentForm reads the comment field out of the request.
func parseCommentForm(r *http.Request) *CommentForm {
	return &CommentForm{
		Text:   r.PostFormValue("text"),
		Errors: make(map[string]string),
	}
}

// validate rejects blank comment text.
func (f *CommentForm) validate() bool {
	if strings.TrimSpace(f.Text) == "" {
		f.Errors["text"] = "The comment text must not be empty."
	}
	return len(f.Errors) == 0
}
