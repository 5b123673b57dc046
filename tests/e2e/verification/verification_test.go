//go:build e2e

package verification_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"court-reservations/internal/domain/user"
	"court-reservations/internal/pkg/codehash"
	"court-reservations/tests/common/authtest"
	"court-reservations/tests/common/dbtest"
	"court-reservations/tests/common/httptest"
	"court-reservations/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const knownCode = "424242"

type VerificationE2ETestSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestVerificationE2ESuite(t *testing.T) {
	suite.Run(t, new(VerificationE2ETestSuite))
}

func (s *VerificationE2ETestSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func subject(id uuid.UUID) map[string]any {
	return map[string]any{"subject_id": id.String()}
}

func verifyBody(id uuid.UUID, code string) map[string]any {
	return map[string]any{"subject_id": id.String(), "code": code}
}

// codes are random; pin the stored digest to a known plaintext
func (s *VerificationE2ETestSuite) pinCode(subjectID uuid.UUID) {
	hash, err := codehash.NewHasher(bcrypt.MinCost).Hash(knownCode)
	s.Require().NoError(err)
	tag, err := s.DB.Exec(context.Background(),
		"UPDATE verification_codes SET code_hash = $2 WHERE subject_id = $1", subjectID, hash)
	s.Require().NoError(err)
	s.Require().EqualValues(1, tag.RowsAffected())
}

func (s *VerificationE2ETestSuite) isActive(id uuid.UUID) bool {
	var active bool
	err := s.DB.QueryRow(context.Background(), "SELECT is_active FROM users WHERE id = $1", id).Scan(&active)
	s.Require().NoError(err)
	return active
}

func (s *VerificationE2ETestSuite) TestIssueAndVerify() {
	s.Run("correct code activates the account once", func() {
		id := dbtest.CreateTestUser(s.T(), s.DB, "dana@example.com", user.RoleMember, false)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications", subject(id), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
		s.pinCode(id)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications/verify", verifyBody(id, knownCode), "")
		s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())
		s.True(s.isActive(id))

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications/verify", verifyBody(id, knownCode), "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "ALREADY_ACTIVE")
	})

	s.Run("wrong code keeps the code usable", func() {
		id := dbtest.CreateTestUser(s.T(), s.DB, "dana@example.com", user.RoleMember, false)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications", subject(id), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
		s.pinCode(id)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications/verify", verifyBody(id, "000000"), "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "CODE_MISMATCH")
		s.False(s.isActive(id))

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications/verify", verifyBody(id, knownCode), "")
		s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())
	})

	s.Run("code is valid at the ttl and expired just after", func() {
		id := dbtest.CreateTestUser(s.T(), s.DB, "dana@example.com", user.RoleMember, false)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications", subject(id), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
		s.pinCode(id)

		s.Clock.Add(s.Config.Verification.CodeTTL + time.Second)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications/verify", verifyBody(id, knownCode), "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusGone, "CODE_EXPIRED")
		s.False(s.isActive(id))
	})

	s.Run("verify without an issued code", func() {
		id := dbtest.CreateTestUser(s.T(), s.DB, "dana@example.com", user.RoleMember, false)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications/verify", verifyBody(id, knownCode), "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NO_PENDING_SUBJECT")
	})

	s.Run("unknown and already active subjects", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications", subject(uuid.New()), "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "IDENTITY_NOT_FOUND")

		active := dbtest.CreateTestUser(s.T(), s.DB, "erin@example.com", user.RoleMember, true)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications", subject(active), "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "ALREADY_ACTIVE")
	})
}

func (s *VerificationE2ETestSuite) TestResend() {
	s.Run("resend replaces the outstanding code", func() {
		id := dbtest.CreateTestUser(s.T(), s.DB, "dana@example.com", user.RoleMember, false)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications", subject(id), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
		s.pinCode(id)

		s.Clock.Add(time.Minute)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications/resend", subject(id), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		var issuedAt time.Time
		err := s.DB.QueryRow(context.Background(),
			"SELECT issued_at FROM verification_codes WHERE subject_id = $1", id).Scan(&issuedAt)
		s.Require().NoError(err)
		s.WithinDuration(e2e.DefaultNow.Add(time.Minute), issuedAt, time.Millisecond)

		// the pinned code belonged to the replaced issue
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications/verify", verifyBody(id, knownCode), "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "CODE_MISMATCH")
	})
}

func (s *VerificationE2ETestSuite) TestAdminExpire() {
	s.Run("only admins can expire a code", func() {
		id := dbtest.CreateTestUser(s.T(), s.DB, "dana@example.com", user.RoleMember, false)
		adminID := dbtest.CreateTestUser(s.T(), s.DB, "root@example.com", user.RoleAdmin, true)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications", subject(id), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
		s.pinCode(id)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications/expire", subject(id), "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED")

		memberToken := s.jwt.GenerateToken(s.T(), id, user.RoleMember)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications/expire", subject(id), memberToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "FORBIDDEN")

		adminToken := s.jwt.GenerateToken(s.T(), adminID, user.RoleAdmin)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications/expire", subject(id), adminToken)
		s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications/verify", verifyBody(id, knownCode), "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NO_PENDING_SUBJECT")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/verifications", subject(id), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})
}
