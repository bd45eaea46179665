package utils

import (
	"regexp"
	"strings"

	"github.com/docuverify/ocr-property-verification/dto"
)

// Five uppercase letters, four digits, one uppercase letter.
var rePANNumber = regexp.MustCompile(`[A-Z]{5}[0-9]{4}[A-Z]`)

// PANRules configures PAN extraction. NameSkipTokens disqualify a
// candidate line during the backward name walk.
type PANRules struct {
	Denylist       []DenyRule
	NameSkipTokens []string
}

func DefaultPANRules() PANRules {
	return PANRules{
		Denylist: []DenyRule{
			{Token: "SAMPLE"},
			{Token: "PROJECT"},
			{Token: "Sample country"},
			{Token: "Income tax"},
			{Token: "Male", Exact: true},
		},
		NameSkipTokens: []string{"Date of Birth", "Income Tax", "Department"},
	}
}

// ParsePAN extracts name, PAN number and date of birth from raw OCR
// text. Like ParseAadhaar it never fails; unmatched text yields an
// empty record.
func ParsePAN(text string, rules PANRules) dto.ExtractedPANFields {
	lines := filterLines(text, rules.Denylist)

	var out dto.ExtractedPANFields

	panIdx := -1
	for i, line := range lines {
		if m := rePANNumber.FindString(line); m != "" {
			out.PANNumber = m
			panIdx = i
			break
		}
	}

	for _, line := range lines {
		if m := reDOB.FindString(line); m != "" {
			out.DateOfBirth = m
			break
		}
	}

	// PAN cards interleave department boilerplate between the printed
	// name and the number more variably than Aadhaar cards, so the line
	// directly above the number is not trustworthy. Walk backward to the
	// first plausible candidate instead.
	if panIdx > 0 {
		out.Name = panNameAbove(lines[:panIdx], rules.NameSkipTokens)
	}

	return out
}

func panNameAbove(above []string, skipTokens []string) string {
	for i := len(above) - 1; i >= 0; i-- {
		line := above[i]
		if len(line) <= 2 {
			continue
		}
		if reDOB.MatchString(line) || rePANNumber.MatchString(line) {
			continue
		}
		if containsAny(line, skipTokens) {
			continue
		}
		return line
	}
	return ""
}

func containsAny(line string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(line, t) {
			return true
		}
	}
	return false
}
