package dto

import (
	"fmt"
	"strings"
)

type DocumentType string

const (
	DocTypeEC      DocumentType = "encumbrance_certificate"
	DocTypeAadhaar DocumentType = "aadhaar"
	DocTypePAN     DocumentType = "pan"
)

// ExtractedAadhaarFields holds the fields parsed from Aadhaar card OCR text.
// Empty string means the field could not be extracted.
type ExtractedAadhaarFields struct {
	Name          string `json:"name,omitempty"`
	AadhaarNumber string `json:"aadhaar_number,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
}

// ExtractedPANFields holds the fields parsed from PAN card OCR text.
type ExtractedPANFields struct {
	Name        string `json:"name,omitempty"`
	PANNumber   string `json:"pan_number,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
}

// ExtractedECFields holds the fields parsed from Encumbrance Certificate
// PDF text.
type ExtractedECFields struct {
	ApplicationNumber string `json:"application_number,omitempty"`
	ApplicantName     string `json:"applicant_name,omitempty"`
	ApplicantAddress  string `json:"applicant_address,omitempty"`
	SurveyNumber      string `json:"survey_number,omitempty"`
	MeasuringArea     string `json:"measuring_area,omitempty"`
	Village           string `json:"village,omitempty"`
	Hobli             string `json:"hobli,omitempty"`
	Taluk             string `json:"taluk,omitempty"`
	District          string `json:"district,omitempty"`
}

// ApplicantDocuments is the union of the three per-document extractions
// for one applicant, fed into verification.
type ApplicantDocuments struct {
	Aadhaar ExtractedAadhaarFields `json:"aadhaar"`
	PAN     ExtractedPANFields     `json:"pan"`
	EC      ExtractedECFields      `json:"ec"`
}

// ReferenceAadhaarRecord is the independently stored ground truth for an
// Aadhaar holder, keyed by Aadhaar number.
type ReferenceAadhaarRecord struct {
	Name          string `json:"name"`
	AadhaarNumber string `json:"aadhaar_number"`
	DateOfBirth   string `json:"date_of_birth"`
}

// ReferencePANRecord is the ground truth for a PAN holder, keyed by PAN.
type ReferencePANRecord struct {
	Name        string `json:"name"`
	PANNumber   string `json:"pan_number"`
	DateOfBirth string `json:"date_of_birth"`
}

// ReferenceECRecord is the ground truth for a property, keyed by survey
// number.
type ReferenceECRecord struct {
	SurveyNumber  string `json:"survey_number"`
	MeasuringArea string `json:"measuring_area"`
	Village       string `json:"village"`
	Hobli         string `json:"hobli"`
	Taluk         string `json:"taluk"`
	District      string `json:"district"`
}

// ValidateContainer checks that the uploaded file's container format
// matches what the document type expects. A wrong container is a caller
// contract violation, not OCR noise.
func ValidateContainer(docType DocumentType, filename string) error {
	lower := strings.ToLower(filename)

	switch docType {
	case DocTypeEC:
		if !strings.HasSuffix(lower, ".pdf") {
			return fmt.Errorf("encumbrance certificate must be a PDF, got %q", filename)
		}
	case DocTypeAadhaar, DocTypePAN:
		if !strings.HasSuffix(lower, ".png") &&
			!strings.HasSuffix(lower, ".jpg") &&
			!strings.HasSuffix(lower, ".jpeg") {
			return fmt.Errorf("%s card must be a PNG or JPEG image, got %q", docType, filename)
		}
	default:
		return fmt.Errorf("unknown document type: %s", docType)
	}
	return nil
}
