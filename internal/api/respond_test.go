package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ctrip-server/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFail_MapsSentinelsToStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("vote value must be 1 or -1: %w", services.ErrValidation), http.StatusBadRequest},
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"conflict", fmt.Errorf("email already registered: %w", services.ErrConflict), http.StatusConflict},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"locked", services.ErrAccountLocked, http.StatusForbidden},
		{"refresh denied", services.ErrAccessDenied, http.StatusForbidden},
		{"unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			fail(c, tc.err)
			assert.Equal(t, tc.want, recorder.Code)
		})
	}
}
