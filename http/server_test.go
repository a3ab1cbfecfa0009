package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"goblog/domain"
)

// newTestServer wires a Server to the in-memory fakes. CSRF is disabled so
// tests can POST without fetching a token first.
func newTestServer(t *testing.T) (*Server, *fixture) {
	t.Helper()
	f := newFixture()
	s := NewServer(
		ServerConfig{
			PageSize:    10,
			CacheTTL:    20 * time.Second,
			MediaDir:    t.TempDir(),
			CSRFKey:     "32-byte-long-auth-key-for-tests!",
			DisableCSRF: true,
		},
		&fakeUserService{f},
		&fakeGroupService{f},
		&fakePostService{f},
		&fakeCommentService{f},
		&fakeFollowService{f},
		&fakeImageService{f: f},
	)
	return s, f
}

// doGet performs a GET through the full middleware chain. A non-nil user is
// sent along via its remember token cookie.
func doGet(t *testing.T, s *Server, path string, user *domain.User) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if user != nil {
		r.AddCookie(&http.Cookie{Name: "remember_token", Value: user.Remember})
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

// doPost performs a form POST through the full middleware chain.
func doPost(t *testing.T, s *Server, path string, user *domain.User, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != nil {
		r.AddCookie(&http.Cookie{Name: "remember_token", Value: user.Remember})
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

// doMultipartPost performs a multipart form POST, attaching fileContent under
// the "image" field when fileName is not empty.
func doMultipartPost(t *testing.T, s *Server, path string, user *domain.User, fields url.Values, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	for key, values := range fields {
		for _, value := range values {
			if err := mw.WriteField(key, value); err != nil {
				t.Fatal(err)
			}
		}
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("image", fileName)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(fileContent); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodPost, path, body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	if user != nil {
		r.AddCookie(&http.Cookie{Name: "remember_token", Value: user.Remember})
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status: got %d, want %d", w.Code, want)
	}
}

func wantRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	wantStatus(t, w, http.StatusFound)
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("redirect location: got %q, want %q", got, location)
	}
}

func wantBodyContains(t *testing.T, w *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if !strings.Contains(w.Body.String(), substr) {
		t.Fatalf("body does not contain %q", substr)
	}
}

func wantBodyNotContains(t *testing.T, w *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if strings.Contains(w.Body.String(), substr) {
		t.Fatalf("body unexpectedly contains %q", substr)
	}
}
