package service

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/docuverify/ocr-property-verification/dto"
	"github.com/docuverify/ocr-property-verification/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOCRClient struct {
	text string
	err  error
}

func (f *fakeOCRClient) ExtractText(imageData []byte, ext string) (string, error) {
	return f.text, f.err
}

type fakePDFProcessor struct {
	text   string
	images []image.Image
	err    error
}

func (f *fakePDFProcessor) ExtractText(pdfData []byte) (string, error) {
	return f.text, f.err
}

func (f *fakePDFProcessor) ExtractImages(pdfData []byte) ([]image.Image, error) {
	return f.images, f.err
}

func newDocumentService(t *testing.T, ocr OCRClient, pdf PDFProcessor) *DocumentService {
	t.Helper()
	return NewDocumentService(ocr, pdf, logger.NewTestLogger(t))
}

func TestExtractECFromDigitalPDF(t *testing.T) {
	pdf := &fakePDFProcessor{
		text: "ApplicationNumber: AB-1234 ApplicantName: Jane Doe SurveyNo: 12/3 Village: Rampura",
	}
	svc := newDocumentService(t, &fakeOCRClient{}, pdf)

	fields, err := svc.ExtractEC(context.Background(), []byte("%PDF"), "certificate.pdf")
	require.NoError(t, err)

	assert.Equal(t, "AB-1234", fields.ApplicationNumber)
	assert.Equal(t, "Jane Doe", fields.ApplicantName)
	assert.Equal(t, "12/3", fields.SurveyNumber)
	assert.Equal(t, "Rampura", fields.Village)
}

func TestExtractECScannedPDFFallsBackToOCR(t *testing.T) {
	// An embedded-text result this short means a scanned certificate.
	pdf := &fakePDFProcessor{
		text:   " \n ",
		images: []image.Image{image.NewRGBA(image.Rect(0, 0, 8, 8))},
	}
	ocr := &fakeOCRClient{text: "Survey Number: 45/2 District: Mysore"}
	svc := newDocumentService(t, ocr, pdf)

	fields, err := svc.ExtractEC(context.Background(), []byte("%PDF"), "scan.pdf")
	require.NoError(t, err)

	assert.Equal(t, "45/2", fields.SurveyNumber)
	assert.Equal(t, "Mysore", fields.District)
}

func TestExtractECRejectsNonPDF(t *testing.T) {
	svc := newDocumentService(t, &fakeOCRClient{}, &fakePDFProcessor{})

	_, err := svc.ExtractEC(context.Background(), []byte("img"), "certificate.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a PDF")
}

func TestExtractECAbsorbsPDFFailure(t *testing.T) {
	pdf := &fakePDFProcessor{err: errors.New("malformed xref")}
	svc := newDocumentService(t, &fakeOCRClient{err: errors.New("no text")}, pdf)

	fields, err := svc.ExtractEC(context.Background(), []byte("junk"), "broken.pdf")
	require.NoError(t, err)
	assert.Equal(t, dto.ExtractedECFields{}, fields)
}

func TestExtractAadhaarFromOCRText(t *testing.T) {
	ocr := &fakeOCRClient{
		text: "SAMPLE\nJane Doe\n1234 5678 9012\nDOB: 02/01/1990\n",
	}
	svc := newDocumentService(t, ocr, &fakePDFProcessor{})

	// A non-image payload makes the QR fast path fail and forces OCR.
	fields, err := svc.ExtractAadhaar(context.Background(), []byte("not an image"), "card.png")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", fields.Name)
	assert.Equal(t, "1234 5678 9012", fields.AadhaarNumber)
	assert.Equal(t, "02/01/1990", fields.DateOfBirth)
}

func TestExtractAadhaarRejectsWrongContainer(t *testing.T) {
	svc := newDocumentService(t, &fakeOCRClient{}, &fakePDFProcessor{})

	_, err := svc.ExtractAadhaar(context.Background(), []byte("pdf"), "card.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PNG or JPEG")
}

func TestExtractAadhaarOCRFailureYieldsEmptyRecord(t *testing.T) {
	ocr := &fakeOCRClient{err: errors.New("tesseract crashed")}
	svc := newDocumentService(t, ocr, &fakePDFProcessor{})

	fields, err := svc.ExtractAadhaar(context.Background(), []byte("img"), "card.jpg")
	require.NoError(t, err)
	assert.Equal(t, dto.ExtractedAadhaarFields{}, fields)
}

func TestExtractPANFromOCRText(t *testing.T) {
	ocr := &fakeOCRClient{
		text: "Income Tax Department\nJane Doe\n02/01/1990\nABCDE1234F\n",
	}
	svc := newDocumentService(t, ocr, &fakePDFProcessor{})

	fields, err := svc.ExtractPAN(context.Background(), []byte("img"), "pan.jpeg")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", fields.Name)
	assert.Equal(t, "ABCDE1234F", fields.PANNumber)
	assert.Equal(t, "02/01/1990", fields.DateOfBirth)
}

func TestExtractPANOCRFailureYieldsEmptyRecord(t *testing.T) {
	ocr := &fakeOCRClient{err: errors.New("tesseract crashed")}
	svc := newDocumentService(t, ocr, &fakePDFProcessor{})

	fields, err := svc.ExtractPAN(context.Background(), []byte("img"), "pan.jpg")
	require.NoError(t, err)
	assert.Equal(t, dto.ExtractedPANFields{}, fields)
}
