package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header string
		cookie string
		want   string
	}{
		{name: "bearer header", target: "/", header: "Bearer abc", want: "abc"},
		{name: "raw header", target: "/", header: "abc", want: "abc"},
		{name: "query param", target: "/?token=xyz", want: "xyz"},
		{name: "cookie", target: "/", cookie: "c00kie", want: "c00kie"},
		{name: "header wins over query", target: "/?token=xyz", header: "Bearer abc", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: ViewCookieName, Value: tt.cookie})
			}

			token, err := GetTokenFromRequest(r)

			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestGetTokenFromRequest_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := GetTokenFromRequest(r)

	assert.ErrorIs(t, err, ErrNoToken)
}
