package request

import "github.com/google/uuid"

type IssueCodeRequest struct {
	SubjectID uuid.UUID `json:"subject_id" binding:"required"`
}

type VerifyCodeRequest struct {
	SubjectID uuid.UUID `json:"subject_id" binding:"required"`
	Code      string    `json:"code" binding:"required,len=6,numeric"`
}
