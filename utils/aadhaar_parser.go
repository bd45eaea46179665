package utils

import (
	"regexp"
	"strings"

	"github.com/docuverify/ocr-property-verification/dto"
)

// DenyRule drops a known boilerplate line before the positional
// heuristics run. Substring rules compare case-insensitively; exact
// rules compare the trimmed line verbatim.
type DenyRule struct {
	Token string
	Exact bool
}

// AadhaarRules configures Aadhaar extraction. The defaults reproduce the
// tokens printed on sample/demo cards; deployments with different
// watermarks can pass their own table.
type AadhaarRules struct {
	Denylist []DenyRule
}

var (
	// Three groups of four digits separated by single spaces, the way
	// the number is printed on the card.
	reAadhaarNumber = regexp.MustCompile(`\d{4}\s\d{4}\s\d{4}`)
	reDOB           = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
)

func DefaultAadhaarRules() AadhaarRules {
	return AadhaarRules{
		Denylist: []DenyRule{
			{Token: "SAMPLE"},
			{Token: "PROJECT"},
			{Token: "Sample country"},
			{Token: "Male", Exact: true},
		},
	}
}

// ParseAadhaar extracts name, Aadhaar number and date of birth from raw
// OCR text. It never fails: text that matches nothing yields an empty
// record so batch processing degrades instead of aborting.
func ParseAadhaar(text string, rules AadhaarRules) dto.ExtractedAadhaarFields {
	lines := filterLines(text, rules.Denylist)

	var out dto.ExtractedAadhaarFields

	numberIdx := -1
	for i, line := range lines {
		if m := reAadhaarNumber.FindString(line); m != "" {
			out.AadhaarNumber = m
			numberIdx = i
			break
		}
	}

	for _, line := range lines {
		if m := reDOB.FindString(line); m != "" {
			// Keep only the date token, dropping label text like
			// "Date of Birth:".
			out.DateOfBirth = m
			break
		}
	}

	// The holder's name is printed directly above the number block, so a
	// positional lookup works once the boilerplate lines are filtered out.
	if numberIdx > 0 {
		out.Name = lines[numberIdx-1]
	}

	return out
}

// filterLines splits raw OCR text into trimmed lines, dropping empties
// and denylisted boilerplate.
func filterLines(text string, denylist []DenyRule) []string {
	text = strings.ReplaceAll(text, "\r", "")
	raw := strings.Split(text, "\n")

	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" || isDenied(l, denylist) {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

func isDenied(line string, denylist []DenyRule) bool {
	lower := strings.ToLower(line)
	for _, rule := range denylist {
		if rule.Exact {
			if line == rule.Token {
				return true
			}
			continue
		}
		if strings.Contains(lower, strings.ToLower(rule.Token)) {
			return true
		}
	}
	return false
}
