package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kakeibo/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func TestIdentityToolkitSignInSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %s", r.URL.Query().Get("key"))
		}
		var req signInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"localId": "uid-1", "email": req.Email})
	}))
	defer srv.Close()

	a := NewIdentityToolkit("test-key", testLogger()).WithEndpoint(srv.URL)
	user, err := a.SignIn(context.Background(), "me@example.com", "secret")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if user.UID != "uid-1" || user.Email != "me@example.com" {
		t.Fatalf("user = %+v", user)
	}
}

func TestIdentityToolkitSignInRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"INVALID_PASSWORD"}}`))
	}))
	defer srv.Close()

	a := NewIdentityToolkit("k", testLogger()).WithEndpoint(srv.URL)
	_, err := a.SignIn(context.Background(), "me@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestIdentityToolkitUnreachable(t *testing.T) {
	a := NewIdentityToolkit("k", testLogger()).WithEndpoint("http://127.0.0.1:1")
	_, err := a.SignIn(context.Background(), "me@example.com", "pw")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("transport failure must not read as bad credentials")
	}
}

func TestLocalSignIn(t *testing.T) {
	a := NewLocal()
	user, err := a.SignIn(context.Background(), "anyone@example.com", "anything")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if user.UID != "local-user" {
		t.Fatalf("uid = %s", user.UID)
	}
	if _, err := a.SignIn(context.Background(), "", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty email: %v", err)
	}
}
