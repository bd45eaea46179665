package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/docuverify/ocr-property-verification/dto"
	"github.com/docuverify/ocr-property-verification/logger"
	"github.com/docuverify/ocr-property-verification/service"
	"github.com/gin-gonic/gin"
)

// Form field names for the three documents on the verify endpoint.
const (
	formFieldEC      = "ec"
	formFieldAadhaar = "aadhaar"
	formFieldPAN     = "pan"
)

// VerificationHandler handles document verification requests.
type VerificationHandler struct {
	verificationService *service.VerificationService
	log                 logger.Logger
}

func NewVerificationHandler(verificationService *service.VerificationService, log logger.Logger) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		log:                 log,
	}
}

// Verify handles POST /api/v1/verification/verify. The request is a
// multipart form with one file per field: "ec" (PDF), "aadhaar" and
// "pan" (PNG or JPEG).
func (h *VerificationHandler) Verify(c *gin.Context) {
	uploads, err := h.readUploads(c)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	resp, err := h.verificationService.VerifyApplicant(c.Request.Context(), uploads)
	if err != nil {
		if isContainerError(err) {
			h.sendError(c, http.StatusBadRequest, "Unsupported file format", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "Verification failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// readUploads collects the three document files from the multipart form.
// All three must be present.
func (h *VerificationHandler) readUploads(c *gin.Context) ([]dto.DocumentUpload, error) {
	fields := []struct {
		name    string
		docType dto.DocumentType
	}{
		{formFieldEC, dto.DocTypeEC},
		{formFieldAadhaar, dto.DocTypeAadhaar},
		{formFieldPAN, dto.DocTypePAN},
	}

	uploads := make([]dto.DocumentUpload, 0, len(fields))
	for _, f := range fields {
		file, err := c.FormFile(f.name)
		if err != nil {
			return nil, &missingDocumentError{field: f.name}
		}

		data, err := readFile(file)
		if err != nil {
			return nil, err
		}

		uploads = append(uploads, dto.DocumentUpload{
			Type:     f.docType,
			Filename: file.Filename,
			Data:     data,
		})
	}
	return uploads, nil
}

func readFile(file *multipart.FileHeader) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

type missingDocumentError struct {
	field string
}

func (e *missingDocumentError) Error() string {
	return "missing document file: " + e.field
}

func isContainerError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "must be a PDF") ||
		strings.Contains(msg, "PNG or JPEG") ||
		strings.Contains(msg, "is empty")
}

// sendError sends a structured error response.
func (h *VerificationHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		h.log.Error(message, map[string]interface{}{
			"error": err.Error(),
		})
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "DOCUMENT_VERIFICATION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
