package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundboard/internal/core"
)

func testClient(url string) *Client {
	return New(url, 5*time.Second, nil, nil)
}

func apiErr(t *testing.T, err error) *Error {
	t.Helper()
	var e *Error
	require.True(t, errors.As(err, &e), "expected *api.Error, got %v", err)
	return e
}

func TestLoadBanksSendsBearerAndUnwrapsEnvelope(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"Access"},{"id":2,"name":"Zenith"}]}`))
	}))
	defer srv.Close()

	banks, err := testClient(srv.URL).LoadBanks(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "/banks", gotPath)
	require.Len(t, banks, 2)
	assert.Equal(t, "Access", banks[0].Name)
}

func TestEmptyTokenStillSendsBearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).LoadBanks(context.Background(), "")
	require.NoError(t, err)
	// net/http trims trailing whitespace from header values on receipt, so
	// the empty bearer value arrives as a bare scheme.
	assert.Equal(t, "Bearer", gotAuth)
}

func TestCreateUpdateDeleteMethods(t *testing.T) {
	type seen struct{ method, path string }
	var calls []seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, seen{r.Method, r.URL.Path})
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	ctx := context.Background()
	require.NoError(t, c.CreateBank(ctx, "t", core.BankForm{Name: "Access"}))
	require.NoError(t, c.UpdateBank(ctx, "t", 7, core.BankForm{Name: "Zenith"}))
	require.NoError(t, c.DeleteBank(ctx, "t", 7))

	require.Len(t, calls, 3)
	assert.Equal(t, seen{http.MethodPost, "/banks"}, calls[0])
	assert.Equal(t, seen{http.MethodPatch, "/banks/7"}, calls[1])
	assert.Equal(t, seen{http.MethodDelete, "/banks/7"}, calls[2])
}

func TestServerRejectionUsesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"bank already exists"}`))
	}))
	defer srv.Close()

	err := testClient(srv.URL).CreateBank(context.Background(), "t", core.BankForm{Name: "Access"})
	e := apiErr(t, err)
	assert.Equal(t, KindServer, e.Kind)
	assert.Equal(t, http.StatusConflict, e.Status)
	assert.Equal(t, "bank already exists", e.Message)
}

func TestServerRejectionFallsBackToActionMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := testClient(srv.URL).DeleteBank(context.Background(), "t", 1)
	e := apiErr(t, err)
	assert.Equal(t, KindServer, e.Kind)
	assert.Equal(t, "Failed to delete bank. Please try again.", e.Message)
}

func TestMalformedBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).LoadBanks(context.Background(), "t")
	e := apiErr(t, err)
	assert.Equal(t, KindDecode, e.Kind)
	assert.Equal(t, MsgInvalidResponse, e.Message)
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := testClient(srv.URL).LoadBanks(context.Background(), "t")
	e := apiErr(t, err)
	assert.Equal(t, KindNetwork, e.Kind)
	assert.Equal(t, MsgNetworkError, e.Message)
}

func TestContextCancellationIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := testClient(srv.URL).LoadBanks(ctx, "t")
	e := apiErr(t, err)
	assert.Equal(t, KindNetwork, e.Kind)
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"token":"t1","user":{"id":1,"name":"A","role":"admin"}}`))
	}))
	defer srv.Close()

	res, err := testClient(srv.URL).Login(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "t1", res.Token)
	assert.Equal(t, "A", res.User.Name)
	assert.Equal(t, core.RoleAdmin, res.User.Role)
}

func TestLoginAcceptsAccessTokenField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"t2","user":{"name":"B"}}`))
	}))
	defer srv.Close()

	res, err := testClient(srv.URL).Login(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "t2", res.Token)
}

func TestLoginWithoutTokenIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"name":"B"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Login(context.Background(), "a", "b")
	e := apiErr(t, err)
	assert.Equal(t, KindDecode, e.Kind)
}

func TestLoginRejectionMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Login(context.Background(), "a", "wrong")
	e := apiErr(t, err)
	assert.Equal(t, "Invalid credentials", e.Message)
}
