package auth

import (
	"sync"
	"testing"
)

func TestMakeRememberToken(t *testing.T) {
	token, err := MakeRememberToken()
	if err != nil {
		t.Fatal(err)
	}
	n, err := NBytes(token)
	if err != nil {
		t.Fatal(err)
	}
	if n != RememberTokenBytes {
		t.Errorf("token bytes: got %d, want %d", n, RememberTokenBytes)
	}

	other, err := MakeRememberToken()
	if err != nil {
		t.Fatal(err)
	}
	if token == other {
		t.Error("two generated tokens are identical")
	}
}

func TestHMACHash(t *testing.T) {
	h := NewHMAC("secret-key")

	first := h.Hash("input")
	second := h.Hash("input")
	if first != second {
		t.Error("hashing the same input twice gave different results")
	}
	if h.Hash("other input") == first {
		t.Error("different inputs hashed to the same value")
	}
	if NewHMAC("another-key").Hash("input") == first {
		t.Error("different keys hashed to the same value")
	}
}

// Every request hashes its remember cookie through the one HMAC the user
// service holds, so concurrent calls must not corrupt each other's digests.
func TestHMACHashConcurrent(t *testing.T) {
	h := NewHMAC("secret-key")
	want := h.Hash("some-token")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if got := h.Hash("some-token"); got != want {
					t.Errorf("concurrent hash: got %q, want %q", got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNBytesRejectsGarbage(t *testing.T) {
	if _, err := NBytes("not base64 at all!!!"); err == nil {
		t.Error("expected an error for invalid base64")
	}
}
