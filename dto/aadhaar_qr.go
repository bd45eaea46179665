package dto

import "encoding/xml"

// AadhaarQRData is the XML payload embedded in the Aadhaar card QR code
// (UIDAI print-letter barcode format). When the QR decodes cleanly it is
// a far more reliable source than OCR.
type AadhaarQRData struct {
	XMLName     xml.Name `xml:"PrintLetterBarcodeData"`
	UID         string   `xml:"uid,attr"`
	Name        string   `xml:"name,attr"`
	Gender      string   `xml:"gender,attr"`
	YearOfBirth string   `xml:"yob,attr"`
	DateOfBirth string   `xml:"dob,attr"`
}

// GroupedUID returns the 12-digit UID formatted as three groups of four
// digits, the same shape the OCR path extracts from the printed card.
func (q *AadhaarQRData) GroupedUID() string {
	if len(q.UID) != 12 {
		return q.UID
	}
	return q.UID[0:4] + " " + q.UID[4:8] + " " + q.UID[8:12]
}

// GetDOB returns the date of birth, falling back to the year of birth
// for older cards that only carry yob.
func (q *AadhaarQRData) GetDOB() string {
	if q.DateOfBirth != "" {
		return q.DateOfBirth
	}
	return q.YearOfBirth
}
