package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseECLabeledFields(t *testing.T) {
	text := "Certificate ApplicationNumber: AB-1234 ApplicantName: Jane Doe SurveyNo: 12/3 trailing"

	fields := ParseEC(text, DefaultECRules())

	assert.Equal(t, "AB-1234", fields.ApplicationNumber)
	assert.Equal(t, "Jane Doe", fields.ApplicantName)
	assert.Equal(t, "12/3", fields.SurveyNumber)
}

func TestParseECFullCertificate(t *testing.T) {
	text := `Application Number [ EC-2023-001 ]
		Applicant Name: John Smith
		Applicant Address: 12, MG Road, Bengaluru
		Survey No: 45/2
		Total Area 1200 Sqft
		Village: Kothanur
		Hobli: Krishnarajapuram
		Taluk: Bengaluru East
		District: Bengaluru Urban`

	fields := ParseEC(text, DefaultECRules())

	assert.Equal(t, "EC-2023-001", fields.ApplicationNumber)
	assert.Equal(t, "John Smith", fields.ApplicantName)
	assert.Equal(t, "12, MG Road, Bengaluru", fields.ApplicantAddress)
	assert.Equal(t, "45/2", fields.SurveyNumber)
	assert.Equal(t, "1200 Sqft", fields.MeasuringArea)
	assert.Equal(t, "Kothanur", fields.Village)
	assert.Equal(t, "Krishnarajapuram", fields.Hobli)
	assert.Equal(t, "Bengaluru East", fields.Taluk)
	assert.Equal(t, "Bengaluru Urban", fields.District)
}

func TestParseECAcceptsSoftMisread(t *testing.T) {
	// OCR routinely turns "Sqft" into "Soft".
	fields := ParseEC("Total Area: 950 Soft", DefaultECRules())

	assert.Equal(t, "950 Soft", fields.MeasuringArea)
}

func TestParseECFieldsIndependent(t *testing.T) {
	// A missing label must not block the other fields.
	fields := ParseEC("Village: Kothanur Taluk: Anekal", DefaultECRules())

	assert.Equal(t, "Kothanur", fields.Village)
	assert.Equal(t, "Anekal", fields.Taluk)
	assert.Empty(t, fields.ApplicationNumber)
	assert.Empty(t, fields.SurveyNumber)
}

func TestParseECFlattensColumnLayout(t *testing.T) {
	// Multi-column PDF text arrives with arbitrary breaks and runs of
	// whitespace between label and value.
	text := "Survey\nNo:   45/2\n\nVillage:\n  Kothanur   Hobli: Anekal"

	fields := ParseEC(text, DefaultECRules())

	assert.Equal(t, "45/2", fields.SurveyNumber)
	assert.Equal(t, "Kothanur", fields.Village)
	assert.Equal(t, "Anekal", fields.Hobli)
}

func TestParseECCaseInsensitiveLabels(t *testing.T) {
	fields := ParseEC("SURVEY NO: 7/1 VILLAGE: Hoskote", DefaultECRules())

	assert.Equal(t, "7/1", fields.SurveyNumber)
	assert.Equal(t, "Hoskote", fields.Village)
}

func TestParseECEmptyText(t *testing.T) {
	fields := ParseEC("", DefaultECRules())

	assert.Empty(t, fields.ApplicationNumber)
	assert.Empty(t, fields.District)
}
