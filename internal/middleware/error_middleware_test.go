package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ekoca/volunteerhub/internal/pkg/apperrors"
)

func recordError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/test", nil)

	HandleAPIError(c, err)
	return w
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.NewValidationError("bad input"), http.StatusBadRequest},
		{"bad request", apperrors.NewBadRequestError("bad request"), http.StatusBadRequest},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusBadRequest},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"invalid token", apperrors.ErrTokenInvalid, http.StatusUnauthorized},
		{"forbidden", apperrors.ErrNotRequestCreator, http.StatusForbidden},
		{"private team", apperrors.ErrTeamPrivate, http.StatusForbidden},
		{"not found", apperrors.ErrEventNotFound, http.StatusNotFound},
		{"invitation gone", apperrors.ErrInvitationNotFound, http.StatusNotFound},
		{"conflict", apperrors.ErrAlreadyAttending, http.StatusConflict},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"pending invitation", apperrors.ErrInvitationPending, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := recordError(t, tc.err)
			require.Equal(t, tc.status, w.Code)
			require.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestHandleAPIError_HidesInternalDetails(t *testing.T) {
	w := recordError(t, errors.New("pq: connection refused at 10.0.0.5"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestHandleAPIError_WrappedCustomError(t *testing.T) {
	w := recordError(t, apperrors.NewConflictError("name already taken"))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "name already taken")
}
