//go:build e2e

package reservation_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"court-reservations/internal/domain/user"
	resdto "court-reservations/internal/handler/dto/response"
	"court-reservations/tests/common/authtest"
	"court-reservations/tests/common/dbtest"
	"court-reservations/tests/common/httptest"
	"court-reservations/tests/e2e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
)

type ReservationE2ETestSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestReservationE2ESuite(t *testing.T) {
	suite.Run(t, new(ReservationE2ETestSuite))
}

func (s *ReservationE2ETestSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

type member struct {
	id    uuid.UUID
	token string
}

func (s *ReservationE2ETestSuite) newMember(email string, active bool) member {
	id := dbtest.CreateTestUser(s.T(), s.DB, email, user.RoleMember, active)
	return member{id: id, token: s.jwt.GenerateToken(s.T(), id, user.RoleMember)}
}

func bookingBody(courtID uuid.UUID, date, start, end string) map[string]any {
	return map[string]any{
		"court_id":   courtID.String(),
		"date":       date,
		"start_time": start,
		"end_time":   end,
	}
}

func (s *ReservationE2ETestSuite) book(token string, body map[string]any) (int, string) {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", body, token)
	var created resdto.CreateReservationResponse
	if rec.Code == http.StatusCreated {
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &created))
	}
	return rec.Code, created.ID
}

func (s *ReservationE2ETestSuite) TestCreateAndRead() {
	s.Run("booked reservation is visible by id and in upcoming", func() {
		alice := s.newMember("alice@example.com", true)
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")

		code, id := s.book(alice.token, bookingBody(courtID, "2030-06-11", "09:00", "10:00"))
		s.Require().Equal(http.StatusCreated, code)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations/"+id, nil, alice.token)
		var got resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal("Court 1", got.CourtName)
		s.Equal(dbtest.DefaultLocationName, got.LocationName)
		s.Equal("2030-06-11", got.Date)
		s.Equal("09:00", got.StartTime)
		s.Equal("10:00", got.EndTime)
		s.Equal("confirmed", got.Status)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations?scope=upcoming", nil, alice.token)
		var upcoming []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &upcoming)
		s.Require().Len(upcoming, 1)
		s.Equal(id, upcoming[0].ID)
	})

	s.Run("stored end minute is the last occupied minute", func() {
		alice := s.newMember("alice@example.com", true)
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")

		_, id := s.book(alice.token, bookingBody(courtID, "2030-06-11", "09:00", "10:00"))

		var start, end int16
		err := s.DB.QueryRow(context.Background(),
			"SELECT start_minute, end_minute FROM reservations WHERE id = $1", id).Scan(&start, &end)
		s.Require().NoError(err)
		s.Equal(int16(540), start)
		s.Equal(int16(599), end)
	})

	s.Run("another member cannot read the reservation", func() {
		alice := s.newMember("alice@example.com", true)
		bob := s.newMember("bob@example.com", true)
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")

		_, id := s.book(alice.token, bookingBody(courtID, "2030-06-11", "09:00", "10:00"))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations/"+id, nil, bob.token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "RESERVATION_NOT_FOUND")
	})
}

func (s *ReservationE2ETestSuite) TestBookingRules() {
	s.Run("back to back bookings succeed, overlap conflicts", func() {
		alice := s.newMember("alice@example.com", true)
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")

		code, _ := s.book(alice.token, bookingBody(courtID, "2030-06-11", "09:00", "10:00"))
		s.Equal(http.StatusCreated, code)
		code, _ = s.book(alice.token, bookingBody(courtID, "2030-06-11", "10:00", "11:00"))
		s.Equal(http.StatusCreated, code)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations",
			bookingBody(courtID, "2030-06-11", "09:30", "10:30"), alice.token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "SLOT_CONFLICT")
	})

	s.Run("same slot on another court is free", func() {
		alice := s.newMember("alice@example.com", true)
		court1 := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")
		court2 := dbtest.CreateTestCourt(s.T(), s.DB, "Court 2")

		code, _ := s.book(alice.token, bookingBody(court1, "2030-06-11", "09:00", "10:00"))
		s.Equal(http.StatusCreated, code)
		code, _ = s.book(alice.token, bookingBody(court2, "2030-06-11", "09:00", "10:00"))
		s.Equal(http.StatusCreated, code)
	})

	s.Run("past date and past start time", func() {
		alice := s.newMember("alice@example.com", true)
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations",
			bookingBody(courtID, "2030-06-09", "12:00", "13:00"), alice.token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "PAST_DATE")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations",
			bookingBody(courtID, "2030-06-10", "09:00", "10:00"), alice.token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "PAST_TIME")
	})

	s.Run("unverified member cannot book", func() {
		carol := s.newMember("carol@example.com", false)
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations",
			bookingBody(courtID, "2030-06-11", "09:00", "10:00"), carol.token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "USER_INACTIVE")
	})

	s.Run("unknown court", func() {
		alice := s.newMember("alice@example.com", true)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations",
			bookingBody(uuid.New(), "2030-06-11", "09:00", "10:00"), alice.token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "COURT_NOT_FOUND")
	})

	s.Run("token is required and must be valid", func() {
		alice := s.newMember("alice@example.com", true)
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")
		body := bookingBody(courtID, "2030-06-11", "09:00", "10:00")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", body, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED")

		expired := s.jwt.CreateExpiredToken(s.T(), alice.id, user.RoleMember)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", body, expired)
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})
}

func (s *ReservationE2ETestSuite) TestConcurrentBooking() {
	s.Run("only one of many overlapping requests wins", func() {
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")
		const n = 12
		members := make([]member, n)
		for i := range members {
			members[i] = s.newMember(uuid.NewString()+"@example.com", true)
		}

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			codes = map[int]int{}
		)
		for i := range n {
			wg.Add(1)
			go func(m member, offset int) {
				defer wg.Done()
				start := []string{"09:00", "09:15", "09:30"}[offset%3]
				rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations",
					bookingBody(courtID, "2030-06-11", start, "10:30"), m.token)
				mu.Lock()
				codes[rec.Code]++
				mu.Unlock()
			}(members[i], i)
		}
		wg.Wait()

		s.Equal(1, codes[http.StatusCreated])
		s.Equal(n-1, codes[http.StatusConflict])

		var confirmed int
		err := s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM reservations WHERE court_id = $1 AND status = 'confirmed'", courtID).Scan(&confirmed)
		s.Require().NoError(err)
		s.Equal(1, confirmed)
	})

	s.Run("exclusion constraint rejects overlaps written around the service", func() {
		alice := s.newMember("alice@example.com", true)
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")
		code, _ := s.book(alice.token, bookingBody(courtID, "2030-06-11", "09:00", "10:00"))
		s.Require().Equal(http.StatusCreated, code)

		_, err := s.DB.Exec(context.Background(), `INSERT INTO reservations
			(id, user_id, court_id, reserved_on, start_minute, end_minute, status, created_at, updated_at)
			VALUES ($1, $2, $3, '2030-06-11', 570, 629, 'confirmed', now(), now())`,
			uuid.New(), alice.id, courtID)

		var pgErr *pgconn.PgError
		s.Require().ErrorAs(err, &pgErr)
		s.Equal("23P01", pgErr.Code)
	})
}

func (s *ReservationE2ETestSuite) TestCancel() {
	cancelURL := func(id string) string { return "/api/reservations/" + id + "/cancel" }

	s.Run("cancel frees the slot and moves it to cancelled", func() {
		alice := s.newMember("alice@example.com", true)
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")
		_, id := s.book(alice.token, bookingBody(courtID, "2030-06-11", "09:00", "10:00"))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cancelURL(id), nil, alice.token)
		var body resdto.CancelReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cancelURL(id), nil, alice.token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "ALREADY_CANCELLED")

		code, _ := s.book(alice.token, bookingBody(courtID, "2030-06-11", "09:00", "10:00"))
		s.Equal(http.StatusCreated, code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations?scope=cancelled", nil, alice.token)
		var cancelled []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cancelled)
		s.Require().Len(cancelled, 1)
		s.Equal(id, cancelled[0].ID)
	})

	s.Run("same-day cancellation closes at the cutoff", func() {
		alice := s.newMember("alice@example.com", true)
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")
		// now is 09:30 and the cutoff is two hours
		_, soon := s.book(alice.token, bookingBody(courtID, "2030-06-10", "11:00", "12:00"))
		_, later := s.book(alice.token, bookingBody(courtID, "2030-06-10", "12:00", "13:00"))
		s.Require().NotEmpty(soon)
		s.Require().NotEmpty(later)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cancelURL(soon), nil, alice.token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "TOO_LATE_TO_CANCEL")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cancelURL(later), nil, alice.token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("only the owner or an admin may cancel", func() {
		alice := s.newMember("alice@example.com", true)
		bob := s.newMember("bob@example.com", true)
		adminID := dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", user.RoleAdmin, true)
		adminToken := s.jwt.GenerateToken(s.T(), adminID, user.RoleAdmin)
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")
		_, id := s.book(alice.token, bookingBody(courtID, "2030-06-11", "09:00", "10:00"))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cancelURL(id), nil, bob.token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "NOT_OWNED")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cancelURL(id), nil, adminToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("unknown reservation", func() {
		alice := s.newMember("alice@example.com", true)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cancelURL(uuid.NewString()), nil, alice.token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "RESERVATION_NOT_FOUND")
	})
}

func (s *ReservationE2ETestSuite) TestPastScope() {
	s.Run("reservations move to past once they end", func() {
		alice := s.newMember("alice@example.com", true)
		courtID := dbtest.CreateTestCourt(s.T(), s.DB, "Court 1")
		_, id := s.book(alice.token, bookingBody(courtID, "2030-06-10", "10:00", "11:00"))
		s.Require().NotEmpty(id)

		s.Clock.Add(2 * time.Hour) // 11:30, after the booking ended

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations?scope=past", nil, alice.token)
		var past []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &past)
		s.Require().Len(past, 1)
		s.Equal(id, past[0].ID)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations", nil, alice.token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq(`[]`, rec.Body.String())
	})
}
