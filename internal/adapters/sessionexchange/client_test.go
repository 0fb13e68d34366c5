package sessionexchange_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neweraservicez/startup-os/internal/adapters/sessionexchange"
	"github.com/neweraservicez/startup-os/internal/domain"
)

func TestExchangeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ext-123", r.Header.Get(sessionexchange.HeaderSessionID))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"x","email":"ada@example.com","name":"Ada","picture":"https://img/ada.png","session_token":"st_remote"}`)
	}))
	defer server.Close()

	id, err := sessionexchange.NewClient(server.URL).Exchange(context.Background(), "ext-123")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.Equal(t, "Ada", id.Name)
	require.NotNil(t, id.Picture)
	assert.Equal(t, "https://img/ada.png", *id.Picture)
	assert.Equal(t, domain.SessionToken("st_remote"), id.SessionToken)
}

func TestExchangeRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := sessionexchange.NewClient(server.URL).Exchange(context.Background(), "stale")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidExternalSession)
}

func TestExchangeMissingEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"Nobody"}`)
	}))
	defer server.Close()

	_, err := sessionexchange.NewClient(server.URL).Exchange(context.Background(), "ext")
	assert.ErrorIs(t, err, domain.ErrInvalidExternalSession)
}
