package utils

import (
	"regexp"
	"strings"

	"github.com/docuverify/ocr-property-verification/dto"
)

// Field keys for the EC label rules.
const (
	ECFieldApplicationNumber = "application_number"
	ECFieldApplicantName     = "applicant_name"
	ECFieldApplicantAddress  = "applicant_address"
	ECFieldSurveyNumber      = "survey_number"
	ECFieldMeasuringArea     = "measuring_area"
	ECFieldVillage           = "village"
	ECFieldHobli             = "hobli"
	ECFieldTaluk             = "taluk"
	ECFieldDistrict          = "district"
)

// LabelRule pulls one labeled field out of flattened EC text. Each rule
// is independent; a label that is missing simply leaves its field empty.
type LabelRule struct {
	Field string
	re    *regexp.Regexp
}

// ecTerminator ends a free-text capture when the next labeled section
// begins. Needed because the capture classes for names and addresses
// include spaces and would otherwise run into the following label.
const ecTerminator = `(?:\s(?:Application|Applicant|Survey|Total|Village|Hobli|Taluk|District)|$)`

// NewLabelRule builds a case-insensitive label-anchored rule. The label
// may be followed by colons, whitespace or an opening bracket before the
// captured value starts.
func NewLabelRule(field, label, capture string) LabelRule {
	return LabelRule{
		Field: field,
		re:    regexp.MustCompile(`(?i)` + label + `[:\s\[]*` + capture),
	}
}

// DefaultECRules is the label table for Karnataka-style encumbrance
// certificates. "Soft" is kept alongside "Sqft" because OCR routinely
// misreads the unit.
func DefaultECRules() []LabelRule {
	letters := `([A-Za-z]+(?:\s[A-Za-z]+)*?)` + ecTerminator
	return []LabelRule{
		NewLabelRule(ECFieldApplicationNumber, `Application\s*Number`, `([A-Za-z0-9\-]+)`),
		NewLabelRule(ECFieldApplicantName, `Applicant\s*Name`, letters),
		NewLabelRule(ECFieldApplicantAddress, `Applicant\s*Address`, `([A-Za-z0-9,\-]+(?:\s[A-Za-z0-9,\-]+)*?)`+ecTerminator),
		NewLabelRule(ECFieldSurveyNumber, `Survey\s*(?:No|Number)`, `([0-9/]+)`),
		NewLabelRule(ECFieldMeasuringArea, `Total\s+Area`, `([0-9]+\s*(?:Sqft|Soft))`),
		NewLabelRule(ECFieldVillage, `Village`, letters),
		NewLabelRule(ECFieldHobli, `Hobli`, letters),
		NewLabelRule(ECFieldTaluk, `Taluk`, letters),
		NewLabelRule(ECFieldDistrict, `District`, letters),
	}
}

var reWhitespaceRun = regexp.MustCompile(`\s{2,}`)

// ParseEC extracts the labeled fields from concatenated EC page text.
// PDF extraction does not preserve visual line order in the certificate's
// multi-column layout, so positional heuristics are useless here: the
// text is flattened to a single string and each field is pulled by a
// label-anchored pattern.
func ParseEC(text string, rules []LabelRule) dto.ExtractedECFields {
	flat := strings.NewReplacer("\r", " ", "\n", " ").Replace(text)
	flat = reWhitespaceRun.ReplaceAllString(flat, " ")

	var out dto.ExtractedECFields
	for _, rule := range rules {
		m := rule.re.FindStringSubmatch(flat)
		if len(m) < 2 {
			continue
		}
		val := strings.TrimSpace(m[1])
		if val == "" {
			continue
		}

		switch rule.Field {
		case ECFieldApplicationNumber:
			out.ApplicationNumber = val
		case ECFieldApplicantName:
			out.ApplicantName = val
		case ECFieldApplicantAddress:
			out.ApplicantAddress = val
		case ECFieldSurveyNumber:
			out.SurveyNumber = val
		case ECFieldMeasuringArea:
			out.MeasuringArea = val
		case ECFieldVillage:
			out.Village = val
		case ECFieldHobli:
			out.Hobli = val
		case ECFieldTaluk:
			out.Taluk = val
		case ECFieldDistrict:
			out.District = val
		}
	}
	return out
}
