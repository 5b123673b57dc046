package response

type CodeSentResponse struct {
	SubjectID string `json:"subject_id"`
	Status    string `json:"status"`
}
