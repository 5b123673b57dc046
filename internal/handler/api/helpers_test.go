//go:build unit

package api_test

import (
	"net/http/httptest"
	"testing"

	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) reservation.Date {
	t.Helper()
	d, err := reservation.ParseDate(s)
	require.NoError(t, err)
	return d
}

func mustSlot(t *testing.T, start, end string) reservation.TimeSlot {
	t.Helper()
	st, err := reservation.ParseTimeOfDay(start)
	require.NoError(t, err)
	en, err := reservation.ParseTimeOfDay(end)
	require.NoError(t, err)
	slot, err := reservation.NewTimeSlot(st, en)
	require.NoError(t, err)
	return slot
}

func performWithRole(t *testing.T, router *gin.Engine, method, path string, role user.Role) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer bearer-token")
	req.Header.Set(testRoleHeader, role.String())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
