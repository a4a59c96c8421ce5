package updateuser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"yeonghwa/internal/core/domain/user"
	service "yeonghwa/internal/core/services/update_user"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.User = user.User{ID: input.UserID, Username: "ana", Email: "ana@x.com", PasswordHash: "$2a$10$hash"}
	if input.Username != "" {
		result.User.Username = input.Username
	}
	result.User.Avatar = input.Avatar
	return result, nil
}

func TestUpdateUserHandler(t *testing.T) {
	cases := []struct {
		id             string
		url            string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "username-and-avatar",
			url:            "/update/42",
			body:           `{"username":"ana2","avatar":"b.png"}`,
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{UserID: "42", Username: "ana2", Avatar: "b.png"},
		},
		{
			id:             "nothing-supplied",
			url:            "/update/42",
			body:           `{}`,
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{UserID: "42"},
		},
		{
			id:             "empty-values-are-skipped",
			url:            "/update/42",
			body:           `{"username":"","avatar":""}`,
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{UserID: "42"},
		},
		{
			id:             "not-found-is-generic",
			url:            "/update/404",
			body:           `{"username":"ana2"}`,
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusInternalServerError,
			expectedInput:  &service.Input{UserID: "404", Username: "ana2"},
		},
		{
			id:             "username-taken-is-generic",
			url:            "/update/42",
			body:           `{"username":"bob"}`,
			serviceErr:     user.ErrUsernameAlreadyExists,
			expectedStatus: http.StatusInternalServerError,
			expectedInput:  &service.Input{UserID: "42", Username: "bob"},
		},
		{
			id:             "username-too-long",
			url:            "/update/42",
			body:           `{"username":"` + strings.Repeat("a", 65) + `"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid-json",
			url:            "/update/42",
			body:           `nope`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			stub := &stubService{err: testcase.serviceErr}
			router := chi.NewRouter()
			router.Method(http.MethodPut, "/update/{id}", New(stub))
			req := httptest.NewRequest(http.MethodPut, testcase.url, strings.NewReader(testcase.body))
			rr := httptest.NewRecorder()

			// Exercise ---
			router.ServeHTTP(rr, req)

			// Verify ---
			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectedInput, stub.input)
			if testcase.serviceErr != nil {
				assert.JSONEq(t, `{"success":false,"message":"Update failed"}`, rr.Body.String())
			}
			assert.NotContains(t, rr.Body.String(), "$2a$10$hash")
		})
	}
}
