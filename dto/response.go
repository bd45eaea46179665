package dto

// VerifyResponse is returned by the verification endpoint: the three
// extracted records plus the computed verification result.
type VerifyResponse struct {
	Documents ApplicantDocuments  `json:"documents"`
	Result    *VerificationResult `json:"result"`
}

// ErrorResponse is the structured error body returned by handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
