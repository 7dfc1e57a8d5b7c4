package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/showgrid/theatre-api/internal/validator"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager: scs.New(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// setupTestSession loads a fresh session into the request context and signs
// the given user in, mirroring what requireAuthentication does in production.
func setupTestSession(t *testing.T, app *Application, r *http.Request, userId int, role string) *http.Request {
	t.Helper()

	ctx, err := app.sessionManager.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyUserId.String(), userId)
	if role != "" {
		app.sessionManager.Put(ctx, SessionKeyUserRole.String(), role)
	}

	ctx = context.WithValue(ctx, SessionKeyUserId, userId)

	return r.WithContext(ctx)
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func ptr[T any](v T) *T {
	return &v
}

// failingSessionStore stands in for a session backend that has gone away.
type failingSessionStore struct{}

func (failingSessionStore) Delete(token string) error {
	return errors.New("session store unavailable")
}

func (failingSessionStore) Find(token string) ([]byte, bool, error) {
	return nil, false, nil
}

func (failingSessionStore) Commit(token string, b []byte, expiry time.Time) error {
	return nil
}
