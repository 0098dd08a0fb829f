package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/config"
	"github.com/dmitrijs2005/notekeeper/internal/client/flows"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatus(t *testing.T) {
	a, _, _ := newTestApp(t, "")
	assert.Equal(t, "(/login [Login])", a.getStatus())

	store := session.NewStore(session.NewMemoryPersister())
	require.NoError(t, store.Set(context.Background(), session.Record{Token: "t", Username: "bob"}))

	b := newApp(&config.Config{}, logging.Discard(), store, &fakeAuth{store: store}, strings.NewReader(""), &safeBuffer{})
	assert.Equal(t, "(/dashboard [Logout] bob)", b.getStatus())
}

func TestOnSessionChange_LeavesDashboard(t *testing.T) {
	a, _, _ := newTestApp(t, "")
	a.router.Navigate(flows.RouteDashboard)

	a.onSessionChange(true)
	assert.Equal(t, flows.RouteDashboard, a.router.Current())

	a.onSessionChange(false)
	assert.Equal(t, flows.RouteLogin, a.router.Current())
}

func TestRun_ReplWithNotes(t *testing.T) {
	a, _, out := newTestApp(t, strings.Join([]string{
		"addnote",
		"Groceries",
		"milk",
		"eggs",
		"",
		"addnote",
		"   ",
		"ignored",
		"",
		"notes",
		"whoami",
		"exit",
	}, "\n")+"\n")
	require.NoError(t, a.store.Set(context.Background(), session.Record{Token: "t", UserID: "1", Username: "bob"}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Run(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}

	text := out.String()
	assert.Contains(t, text, "Note added")
	assert.Contains(t, text, "Nothing added")
	assert.Contains(t, text, "1. Groceries (")
	assert.Contains(t, text, "   milk\neggs")
	assert.Contains(t, text, "Username: bob")
	assert.Contains(t, text, "Bye!\n")

	notes := a.dashboard.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "milk\neggs", notes[0].Description)
}

func TestAddNote_RequiresLogin(t *testing.T) {
	a, _, out := newTestApp(t, "Groceries\nmilk\n\n")

	err := a.AddNote(context.Background())
	require.ErrorIs(t, err, errNotLoggedIn)
	assert.Equal(t, "Please log in first\n", out.String())
	assert.Equal(t, flows.RouteLogin, a.router.Current())
	assert.Empty(t, a.dashboard.Notes())

	line, _ := a.reader.ReadString('\n')
	assert.Equal(t, "Groceries\n", line)
}

func TestRun_AddNoteRefusedAfterLogout(t *testing.T) {
	a, _, out := newTestApp(t, "logout\naddnote\nexit\n")
	require.NoError(t, a.store.Set(context.Background(), session.Record{Token: "t", Username: "bob"}))

	a.Run(context.Background())

	assert.Contains(t, out.String(), "Please log in first")
	assert.Empty(t, a.dashboard.Notes())
}

func TestList_Empty(t *testing.T) {
	a, _, out := newTestApp(t, "")
	require.NoError(t, a.List(context.Background()))
	assert.Equal(t, "No notes yet\n", out.String())
}

// fakeServer serves /api/login/ and /api/register/ like the real backend.
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	exp := time.Now().Add(time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 5, "exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Post("/api/login/", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		w.Header().Set("Content-Type", "application/json")
		if creds["password"] != "Secret123!" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "Invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": token, "user_id": 5, "username": "bob"})
	})
	r.Post("/api/register/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "User created"})
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func TestNewApp_SessionSurvivesRestart(t *testing.T) {
	ts := fakeServer(t)
	ctx := context.Background()
	cfg := &config.Config{
		APIBaseURL:    ts.URL + "/api",
		DBPath:        filepath.Join(t.TempDir(), "data", "session.db"),
		RedirectDelay: time.Millisecond,
		LogLevel:      "error",
	}

	a, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	out := &safeBuffer{}
	a.out = out

	stubInputs(t, []string{"bob@example.com", "bob@example.com"}, []string{"wrong", "Secret123!"})
	require.Error(t, a.Login(ctx))
	assert.Contains(t, out.String(), "Invalid credentials")
	require.NoError(t, a.Login(ctx))
	assert.Equal(t, flows.RouteDashboard, a.router.Current())
	a.Close()

	b, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(b.Close)
	out = &safeBuffer{}
	b.out = out

	assert.True(t, b.isLoggedIn())
	assert.Equal(t, flows.RouteDashboard, b.router.Current())

	require.NoError(t, b.WhoAmI(ctx))
	assert.Contains(t, out.String(), "Username: bob")
	assert.Contains(t, out.String(), "User ID:  5")
	assert.Contains(t, out.String(), "Token:    valid until")

	require.NoError(t, b.Logout(ctx))
	rec, ok := b.store.Get()
	assert.False(t, ok)
	assert.Equal(t, session.Record{}, rec)
}

func TestNewApp_BadAPIURL(t *testing.T) {
	cfg := &config.Config{APIBaseURL: "localhost", DBPath: filepath.Join(t.TempDir(), "s.db")}
	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}
