package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAadhaar(t *testing.T) {
	text := "SAMPLE\nJane Doe\n1234 5678 9012\n01/01/1990\n"

	fields := ParseAadhaar(text, DefaultAadhaarRules())

	assert.Equal(t, "Jane Doe", fields.Name)
	assert.Equal(t, "1234 5678 9012", fields.AadhaarNumber)
	assert.Equal(t, "01/01/1990", fields.DateOfBirth)
}

func TestParseAadhaarDropsBoilerplate(t *testing.T) {
	text := `
		Unique Identification PROJECT
		Sample country of issue
		Male
		Jane Doe
		1234 5678 9012
		Date of Birth: 01/01/1990
	`

	fields := ParseAadhaar(text, DefaultAadhaarRules())

	// The denylisted lines must be gone before the positional name
	// lookup runs, otherwise "Male" would be picked as the name.
	assert.Equal(t, "Jane Doe", fields.Name)
	assert.Equal(t, "1234 5678 9012", fields.AadhaarNumber)
	assert.Equal(t, "01/01/1990", fields.DateOfBirth)
}

func TestParseAadhaarNumberOnFirstLine(t *testing.T) {
	text := "1234 5678 9012\n01/01/1990"

	fields := ParseAadhaar(text, DefaultAadhaarRules())

	assert.Equal(t, "1234 5678 9012", fields.AadhaarNumber)
	assert.Empty(t, fields.Name, "no line above the number, so no name")
}

func TestParseAadhaarNoNumberNoName(t *testing.T) {
	fields := ParseAadhaar("Jane Doe\n01/01/1990", DefaultAadhaarRules())

	assert.Empty(t, fields.AadhaarNumber)
	assert.Empty(t, fields.Name, "name is only attempted when a number was found")
	assert.Equal(t, "01/01/1990", fields.DateOfBirth)
}

func TestParseAadhaarStripsDOBLabel(t *testing.T) {
	text := "Jane Doe\n1234 5678 9012\nDOB: 23/09/2004"

	fields := ParseAadhaar(text, DefaultAadhaarRules())

	assert.Equal(t, "23/09/2004", fields.DateOfBirth)
}

func TestParseAadhaarEmptyText(t *testing.T) {
	fields := ParseAadhaar("", DefaultAadhaarRules())

	assert.Empty(t, fields.Name)
	assert.Empty(t, fields.AadhaarNumber)
	assert.Empty(t, fields.DateOfBirth)
}

func TestParseAadhaarIdempotent(t *testing.T) {
	text := "SAMPLE\nJane Doe\n1234 5678 9012\n01/01/1990"

	first := ParseAadhaar(text, DefaultAadhaarRules())
	second := ParseAadhaar(text, DefaultAadhaarRules())

	assert.Equal(t, first, second)
}
