package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundboard/internal/api"
	"fundboard/internal/config"
	"fundboard/internal/core"
	"fundboard/internal/log"
	"fundboard/internal/session"
)

const testCookie = "fb_session"

func discardLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

// countingBackend stands in for the fund API and records every call.
type countingBackend struct {
	mu      sync.Mutex
	calls   []string // "METHOD /path"
	queries []url.Values
	handler http.HandlerFunc
}

func (b *countingBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.calls = append(b.calls, r.Method+" "+r.URL.Path)
	b.queries = append(b.queries, r.URL.Query())
	b.mu.Unlock()
	if b.handler != nil {
		b.handler(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (b *countingBackend) count(call string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == call {
			n++
		}
	}
	return n
}

func newTestServer(t *testing.T, backend *countingBackend) (*Server, *session.Store) {
	t.Helper()

	ts := httptest.NewServer(backend)
	t.Cleanup(ts.Close)

	logger := discardLogger()
	store, err := session.NewStore(filepath.Join(t.TempDir(), "sessions.db"), time.Hour, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{
		Port:              "8080",
		APIBaseURL:        ts.URL,
		APITimeout:        5 * time.Second,
		SessionTTL:        time.Hour,
		SessionCookieName: testCookie,
	}
	client := api.New(ts.URL, 5*time.Second, logger, nil)
	srv := NewServer(cfg, client, store, nil, logger)
	t.Cleanup(srv.rateLimiter.stop)
	return srv, store
}

func signIn(t *testing.T, store *session.Store, role core.Role) *http.Cookie {
	t.Helper()
	sess, err := store.Create(context.Background(), "tok-123", core.User{
		ID: 1, Name: "Ada", Email: "ada@example.com", Role: role,
	})
	require.NoError(t, err)
	return &http.Cookie{Name: testCookie, Value: sess.ID}
}

func postForm(path, body string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, &countingBackend{})
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestGateRedirectsWithoutSession(t *testing.T) {
	backend := &countingBackend{}
	srv, _ := newTestServer(t, backend)

	for _, path := range []string{"/dashboard", "/dashboard/banks", "/dashboard/audit"} {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusSeeOther, rr.Code, path)
		assert.Equal(t, "/", rr.Header().Get("Location"), path)
	}

	// A cookie pointing at a destroyed session is cleared and redirected too.
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "no-such-session"})
	srv.Handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	assert.Empty(t, backend.calls, "gated redirects must not reach the backend")
}

func TestIndexRedirectsWhenSignedIn(t *testing.T) {
	srv, store := newTestServer(t, &countingBackend{})
	cookie := signIn(t, store, core.RoleAdmin)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestIndexRendersLoginWhenSignedOut(t *testing.T) {
	srv, _ := newTestServer(t, &countingBackend{})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `hx-post="/login"`)
}

func TestLoginCreatesSession(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST /auth/login", r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-abc","user":{"id":7,"name":"Grace","email":"grace@example.com","role":"acct"}}`))
	}}
	srv, store := newTestServer(t, backend)

	rr := httptest.NewRecorder()
	req := postForm("/login", "email=grace%40example.com&password=s3cret", nil)
	req.Header.Set("HX-Request", "true")
	srv.Handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("HX-Redirect"))

	var sessionID string
	for _, c := range rr.Result().Cookies() {
		if c.Name == testCookie {
			sessionID = c.Value
			assert.True(t, c.HttpOnly)
		}
	}
	require.NotEmpty(t, sessionID, "session cookie must be set")

	sess, ok, err := store.Get(context.Background(), sessionID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-abc", sess.Token)
	assert.Equal(t, "Grace", sess.User.Name)
	assert.Equal(t, core.RoleAcct, sess.User.Role)
}

func TestLoginValidationSkipsBackend(t *testing.T) {
	backend := &countingBackend{}
	srv, _ := newTestServer(t, backend)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, postForm("/login", "email=&password=", nil))

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Empty(t, backend.calls)
}

func TestLoginBackendRejected(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}}
	srv, _ := newTestServer(t, backend)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, postForm("/login", "email=a%40b.c&password=nope", nil))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Header().Get("HX-Trigger"), "Invalid credentials")
}

func TestLogoutDestroysSession(t *testing.T) {
	srv, store := newTestServer(t, &countingBackend{})
	cookie := signIn(t, store, core.RoleAdmin)

	rr := httptest.NewRecorder()
	req := postForm("/logout", "", cookie)
	req.Header.Set("HX-Request", "true")
	srv.Handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("HX-Redirect"))

	_, ok, err := store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.False(t, ok, "session must be destroyed")
}

func TestResourcePageRendersListing(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"Access Bank"},{"id":2,"name":"Zenith Bank"}]}`))
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleAdmin)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/banks", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Access Bank")
	assert.Contains(t, body, "Zenith Bank")
	assert.Equal(t, 1, backend.count("GET /banks"))
}

func TestResourcePageSurvivesListingFailure(t *testing.T) {
	srv, store := newTestServer(t, &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}})
	cookie := signIn(t, store, core.RoleAdmin)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/banks", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, "page still renders")
	assert.Contains(t, rr.Body.String(), "Failed to load banks. Please try again.")
}

func TestSaveValidationSkipsBackend(t *testing.T) {
	backend := &countingBackend{}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleAdmin)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, postForm("/dashboard/banks/save", "name=", cookie))

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Header().Get("HX-Trigger"), "name is required")
	assert.Empty(t, backend.calls, "invalid form must not reach the backend")
}

func TestSaveCreateRefreshesOnce(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		default:
			_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"Access Bank"}]}`))
		}
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleAdmin)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, postForm("/dashboard/banks/save", "name=Access+Bank", cookie))

	require.Equal(t, http.StatusOK, rr.Code)
	trigger := rr.Header().Get("HX-Trigger")
	assert.Contains(t, trigger, "Bank created successfully")
	assert.Contains(t, trigger, "modal:close")
	assert.Contains(t, rr.Body.String(), "Access Bank")
	assert.Equal(t, 1, backend.count("POST /banks"))
	assert.Equal(t, 1, backend.count("GET /banks"), "exactly one refresh after a save")
}

func TestSaveUpdateUsesPatch(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"data":[{"id":4,"name":"GT Bank"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleAdmin)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, postForm("/dashboard/banks/save", "id=4&name=GT+Bank", cookie))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("HX-Trigger"), "Bank updated successfully")
	assert.Equal(t, 1, backend.count("PATCH /banks/4"))
}

func TestSaveBackendFailureKeepsTable(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Bank already exists"}`))
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleAdmin)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, postForm("/dashboard/banks/save", "name=Access+Bank", cookie))

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Header().Get("HX-Trigger"), "Bank already exists")
	assert.Equal(t, 0, backend.count("GET /banks"), "failed save must not refresh")
}

func TestSaveRefreshFailureLeavesStaleRows(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleAdmin)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, postForm("/dashboard/banks/save", "name=Access+Bank", cookie))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "none", rr.Header().Get("HX-Reswap"), "stale rows must stay in place")
	trigger := rr.Header().Get("HX-Trigger")
	assert.Contains(t, trigger, "Bank created successfully")
	assert.Contains(t, trigger, "Failed to load banks. Please try again.")
	assert.Empty(t, rr.Body.String())
}

func TestDeleteFailureLeavesTable(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Cannot delete a bank with accounts"}`))
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleAdmin)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, postForm("/dashboard/banks/delete", "id=9", cookie))

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Header().Get("HX-Trigger"), "Cannot delete a bank with accounts")
	assert.Equal(t, 1, backend.count("DELETE /banks/9"))
	assert.Equal(t, 0, backend.count("GET /banks"), "failed delete must not refresh")
}

func TestDeleteSuccessRefreshes(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleAdmin)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, postForm("/dashboard/banks/delete", "id=9", cookie))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("HX-Trigger"), "Bank deleted successfully")
	assert.Contains(t, rr.Body.String(), "No banks yet.")
	assert.Equal(t, 1, backend.count("GET /banks"))
}

func TestDashboardSortsGroups(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard/grouped-accounts/secretariat", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secretariat":{
			"Zenith":{"USD":[{"id":2,"name":"Beta","currentBalance":"20"},{"id":1,"name":"Alpha","currentBalance":"10"}]},
			"Access":{"NGN":[{"id":3,"name":"Gamma","currentBalance":"30"}]}
		}}`))
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleUser)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Less(t, strings.Index(body, "Access"), strings.Index(body, "Zenith"), "banks sorted alphabetically")
	assert.Less(t, strings.Index(body, "Alpha"), strings.Index(body, "Beta"), "accounts sorted within currency")
}

func TestBalancesTabIsFreshFetch(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"project":{}}`))
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleUser)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard/ui/balances?tab=project", nil)
		req.AddCookie(cookie)
		srv.Handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	assert.Equal(t, 2, backend.count("GET /dashboard/grouped-accounts/project"), "every tab switch refetches")
}

func TestAccountSummaryMonthToDate(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"accountId":5,"accountName":"Main","transactionCount":3,"totalInflow":"100","totalOutflow":"40","currentBalance":"60"}}`))
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleUser)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/ui/account-summary?accountId=5&direction=inflow", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Main")

	require.Len(t, backend.queries, 1)
	q := backend.queries[0]
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	assert.Equal(t, firstOfMonth, q.Get("startDate"))
	assert.Equal(t, now.Format("2006-01-02"), q.Get("endDate"))
	assert.Equal(t, "inflow", q.Get("type"))
}

func TestAuditOmitsUnselectedUser(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleAudit)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/audit/table?startDate=2026-08-01&endDate=2026-08-28&page=2&limit=50", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, backend.queries, 1)
	q := backend.queries[0]
	assert.Equal(t, "2026-08-01", q.Get("startDate"))
	assert.Equal(t, "2026-08-28", q.Get("endDate"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "50", q.Get("limit"))
	_, present := q["user"]
	assert.False(t, present, "unselected user must be omitted entirely")
}

func TestNavFiltersByRole(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secretariat":{}}`))
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleUser)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.NotContains(t, body, `href="/dashboard/users"`, "plain users see no user management")
	assert.NotContains(t, body, `href="/dashboard/audit"`)
}

func TestAllResourceRoutesRegistered(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"data":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleAdmin)

	for _, name := range []string{"banks", "currencies", "categories", "accounts", "transactions", "users"} {
		base := "/dashboard/" + name
		gets := []string{base, base + "/table", base + "/form", base + "/confirm?id=1"}
		for _, path := range gets {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.AddCookie(cookie)
			srv.Handler.ServeHTTP(rr, req)
			assert.NotEqual(t, http.StatusNotFound, rr.Code, "GET %s", path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code, "GET %s", path)
		}
		for _, path := range []string{base + "/save", base + "/delete"} {
			rr := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rr, postForm(path, "", cookie))
			assert.NotEqual(t, http.StatusNotFound, rr.Code, "POST %s", path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code, "POST %s", path)
		}
	}
}

func TestFormModalDisablesSubmitWhileSaving(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}}
	srv, store := newTestServer(t, backend)
	cookie := signIn(t, store, core.RoleAdmin)

	for _, name := range []string{"banks", "currencies", "categories", "accounts", "transactions", "users"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard/"+name+"/form", nil)
		req.AddCookie(cookie)
		srv.Handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code, name)
		assert.Contains(t, rr.Body.String(), "hx-disabled-elt", name)
		assert.Contains(t, rr.Body.String(), `hx-indicator="#loading"`, name)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/banks/confirm?id=1", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "hx-disabled-elt", "delete confirm")
}

func TestShellCarriesLoadingOverlay(t *testing.T) {
	backend := &countingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secretariat":{}}`))
	}}
	srv, store := newTestServer(t, backend)

	// Login screen and dashboard shell both render the shared indicator.
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `id="loading"`)

	cookie := signIn(t, store, core.RoleUser)
	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `id="loading"`)
}

func TestRateLimitOnMutations(t *testing.T) {
	backend := &countingBackend{}
	srv, _ := newTestServer(t, backend)

	var last int
	for i := 0; i < 70; i++ {
		rr := httptest.NewRecorder()
		req := postForm("/login", "email=&password=", nil)
		req.RemoteAddr = "10.1.2.3:5555"
		srv.Handler.ServeHTTP(rr, req)
		last = rr.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
