package http

import (
	"net/http"
	"testing"
)

func TestGroupPosts(t *testing.T) {
	s, f := newTestServer(t)
	author := f.addUser("sasha")
	group := f.addGroup("Cats", "cats")
	f.addPost(author, &group.ID, "a grouped entry")
	f.addPost(author, nil, "an ungrouped entry")

	w := doGet(t, s, "/group/cats/", nil)
	wantStatus(t, w, http.StatusOK)
	wantBodyContains(t, w, "Cats")
	wantBodyContains(t, w, "a grouped entry")
	wantBodyNotContains(t, w, "an ungrouped entry")
}

func TestGroupPostsUnknownSlug(t *testing.T) {
	s, _ := newTestServer(t)
	w := doGet(t, s, "/group/nope/", nil)
	wantStatus(t, w, http.StatusNotFound)
}
