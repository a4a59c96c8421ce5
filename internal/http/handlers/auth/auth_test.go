package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services/auth"

	"github.com/stretchr/testify/assert"
)

func TestParseToken(t *testing.T) {
	cases := []struct {
		id     string
		header string
		token  user.SessionToken
		ok     bool
	}{
		{id: "valid", header: "Bearer abc.def.ghi", token: "abc.def.ghi", ok: true},
		{id: "missing", header: "", ok: false},
		{id: "no-prefix", header: "abc.def.ghi", ok: false},
		{id: "other-scheme", header: "Basic abc", ok: false},
		{id: "empty-token", header: "Bearer ", ok: false},
		{id: "prefix-not-at-start", header: "xBearer abc", ok: false},
		{id: "too-long", header: "Bearer " + strings.Repeat("a", AUTH_TOKEN_MAX_LEN+1), ok: false},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if testcase.header != "" {
				req.Header.Set("Authorization", testcase.header)
			}

			token, ok := ParseToken(req)

			assert.Equal(t, testcase.ok, ok)
			assert.Equal(t, testcase.token, token)
		})
	}
}

func TestSetAuthTokenToContext(t *testing.T) {
	var got interface{}
	handler := SetAuthTokenToContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Context().Value(auth.CONTEXT_AUTH_TOKEN_KEY)
	}))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer abc")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, user.SessionToken("abc"), got)
}
