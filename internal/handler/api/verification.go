package api

import (
	"net/http"

	reqdto "court-reservations/internal/handler/dto/request"
	resdto "court-reservations/internal/handler/dto/response"
	"court-reservations/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const codeSentStatus = "code_sent"

type VerificationHandler struct {
	cmds commands.VerificationCommands
}

func NewVerificationHandler(cmds commands.VerificationCommands) *VerificationHandler {
	return &VerificationHandler{cmds: cmds}
}

// @Summary Issue verification code
// @Description Send a fresh code to a pending account
// @Tags verifications
// @Accept json
// @Produce json
// @Param request body reqdto.IssueCodeRequest true "Subject"
// @Success 201 {object} resdto.CodeSentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/verifications [post]
func (h *VerificationHandler) Issue(c *gin.Context) {
	var req reqdto.IssueCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	if err := h.cmds.Issue(c.Request.Context(), req.SubjectID); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CodeSentResponse{SubjectID: req.SubjectID.String(), Status: codeSentStatus})
}

// @Summary Resend verification code
// @Description Replace the outstanding code with a new one
// @Tags verifications
// @Accept json
// @Produce json
// @Param request body reqdto.IssueCodeRequest true "Subject"
// @Success 200 {object} resdto.CodeSentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/verifications/resend [post]
func (h *VerificationHandler) Resend(c *gin.Context) {
	var req reqdto.IssueCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	if err := h.cmds.Resend(c.Request.Context(), req.SubjectID); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CodeSentResponse{SubjectID: req.SubjectID.String(), Status: codeSentStatus})
}

// @Summary Verify code
// @Description Consume a code and activate the account
// @Tags verifications
// @Accept json
// @Param request body reqdto.VerifyCodeRequest true "Subject and code"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /api/verifications/verify [post]
func (h *VerificationHandler) Verify(c *gin.Context) {
	var req reqdto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	if err := h.cmds.Verify(c.Request.Context(), req.SubjectID, req.Code); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Expire verification code
// @Description Drop the outstanding code of a pending account (admin only)
// @Tags verifications
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.IssueCodeRequest true "Subject"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/verifications/expire [post]
func (h *VerificationHandler) Expire(c *gin.Context) {
	var req reqdto.IssueCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	if err := h.cmds.Expire(c.Request.Context(), req.SubjectID); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
