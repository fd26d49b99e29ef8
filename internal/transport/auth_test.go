package transport

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "https://example.com/api", nil)
	require.NoError(t, err)
	return req
}

func TestNoAuth(t *testing.T) {
	req := newTestRequest(t)

	(&NoAuth{}).Apply(req)

	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestBearerAuth(t *testing.T) {
	req := newTestRequest(t)

	(&BearerAuth{Token: "secret"}).Apply(req)

	assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
}

func TestBasicAuth(t *testing.T) {
	tests := []struct {
		name     string
		auth     BasicAuth
		wantUser string
		wantPass string
	}{
		{
			name:     "dataiku token as username",
			auth:     BasicAuth{Username: "dss-token"},
			wantUser: "dss-token",
			wantPass: "",
		},
		{
			name:     "wandb api key as password",
			auth:     BasicAuth{Username: "api", Password: "wandb-key"},
			wantUser: "api",
			wantPass: "wandb-key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newTestRequest(t)

			tt.auth.Apply(req)

			user, pass, ok := req.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, tt.wantUser, user)
			assert.Equal(t, tt.wantPass, pass)
		})
	}
}

func TestHeaderAuth(t *testing.T) {
	req := newTestRequest(t)

	(&HeaderAuth{Header: "X-Api-Key", Value: "secret"}).Apply(req)

	assert.Equal(t, "secret", req.Header.Get("X-Api-Key"))
}
