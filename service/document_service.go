package service

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/docuverify/ocr-property-verification/dto"
	"github.com/docuverify/ocr-property-verification/logger"
	"github.com/docuverify/ocr-property-verification/metrics"
	"github.com/docuverify/ocr-property-verification/utils"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// OCRClient is the text source for card images.
type OCRClient interface {
	ExtractText(imageData []byte, ext string) (string, error)
}

// DocumentService turns uploaded documents into typed field records.
// Extraction noise never surfaces as an error; only a wrong container
// format does, since that is a caller contract violation.
type DocumentService struct {
	ocr          OCRClient
	pdfProcessor PDFProcessor
	log          logger.Logger

	aadhaarRules utils.AadhaarRules
	panRules     utils.PANRules
	ecRules      []utils.LabelRule
}

func NewDocumentService(ocr OCRClient, pdfProcessor PDFProcessor, log logger.Logger) *DocumentService {
	return &DocumentService{
		ocr:          ocr,
		pdfProcessor: pdfProcessor,
		log:          log,
		aadhaarRules: utils.DefaultAadhaarRules(),
		panRules:     utils.DefaultPANRules(),
		ecRules:      utils.DefaultECRules(),
	}
}

// ExtractEC extracts the labeled fields from an encumbrance certificate
// PDF. Scanned certificates with no embedded text fall back to per-page
// image OCR.
func (s *DocumentService) ExtractEC(ctx context.Context, data []byte, filename string) (dto.ExtractedECFields, error) {
	var empty dto.ExtractedECFields

	if err := dto.ValidateContainer(dto.DocTypeEC, filename); err != nil {
		return empty, err
	}
	metrics.DocumentsProcessed.WithLabelValues(string(dto.DocTypeEC)).Inc()

	text, err := s.pdfProcessor.ExtractText(data)
	if err != nil {
		s.log.Warn("EC pdf text extraction failed", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		text = ""
	}

	if len(strings.TrimSpace(text)) < 20 {
		text = s.ocrScannedPDF(data, filename)
	}

	fields := utils.ParseEC(text, s.ecRules)
	if fields == empty {
		metrics.ExtractionEmpty.WithLabelValues(string(dto.DocTypeEC)).Inc()
	}
	return fields, nil
}

// ocrScannedPDF pulls page images out of a scanned PDF and OCRs each of
// them, newline-joining the page texts.
func (s *DocumentService) ocrScannedPDF(data []byte, filename string) string {
	images, err := s.pdfProcessor.ExtractImages(data)
	if err != nil || len(images) == 0 {
		s.log.Warn("EC pdf image extraction failed", map[string]interface{}{
			"filename": filename,
		})
		return ""
	}

	var combined strings.Builder
	for idx, img := range images {
		buf := new(bytes.Buffer)
		if err := png.Encode(buf, img); err != nil {
			continue
		}

		pageText, err := s.ocr.ExtractText(buf.Bytes(), ".png")
		if err != nil {
			s.log.Warn("page OCR failed", map[string]interface{}{
				"filename": filename,
				"page":     idx + 1,
				"error":    err.Error(),
			})
			continue
		}

		combined.WriteString(pageText)
		combined.WriteString("\n")
	}
	return combined.String()
}

// ExtractAadhaar extracts identity fields from an Aadhaar card image.
// The QR code is tried first; OCR is the fallback.
func (s *DocumentService) ExtractAadhaar(ctx context.Context, data []byte, filename string) (dto.ExtractedAadhaarFields, error) {
	var empty dto.ExtractedAadhaarFields

	if err := dto.ValidateContainer(dto.DocTypeAadhaar, filename); err != nil {
		return empty, err
	}
	metrics.DocumentsProcessed.WithLabelValues(string(dto.DocTypeAadhaar)).Inc()

	if qr, err := s.extractAadhaarQR(data, filename); err == nil {
		return qr, nil
	}

	text, err := s.ocr.ExtractText(data, filepath.Ext(filename))
	if err != nil {
		s.log.Warn("aadhaar OCR failed", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		metrics.ExtractionEmpty.WithLabelValues(string(dto.DocTypeAadhaar)).Inc()
		return empty, nil
	}

	fields := utils.ParseAadhaar(text, s.aadhaarRules)
	if fields == empty {
		metrics.ExtractionEmpty.WithLabelValues(string(dto.DocTypeAadhaar)).Inc()
	}
	return fields, nil
}

// extractAadhaarQR decodes the UIDAI QR code on the card and reads the
// identity fields from its XML payload.
func (s *DocumentService) extractAadhaarQR(data []byte, filename string) (dto.ExtractedAadhaarFields, error) {
	var empty dto.ExtractedAadhaarFields

	img, err := decodeImage(data, filename)
	if err != nil {
		return empty, fmt.Errorf("failed to decode image: %w", err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return empty, fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return empty, fmt.Errorf("failed to decode QR code: %w", err)
	}

	var qrData dto.AadhaarQRData
	if err := xml.Unmarshal([]byte(result.GetText()), &qrData); err != nil {
		return empty, fmt.Errorf("failed to parse QR XML data: %w", err)
	}

	s.log.Info("aadhaar fields read from QR code", map[string]interface{}{
		"filename": filename,
	})

	return dto.ExtractedAadhaarFields{
		Name:          qrData.Name,
		AadhaarNumber: qrData.GroupedUID(),
		DateOfBirth:   qrData.GetDOB(),
	}, nil
}

// ExtractPAN extracts identity fields from a PAN card image via OCR.
func (s *DocumentService) ExtractPAN(ctx context.Context, data []byte, filename string) (dto.ExtractedPANFields, error) {
	var empty dto.ExtractedPANFields

	if err := dto.ValidateContainer(dto.DocTypePAN, filename); err != nil {
		return empty, err
	}
	metrics.DocumentsProcessed.WithLabelValues(string(dto.DocTypePAN)).Inc()

	text, err := s.ocr.ExtractText(data, filepath.Ext(filename))
	if err != nil {
		s.log.Warn("pan OCR failed", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		metrics.ExtractionEmpty.WithLabelValues(string(dto.DocTypePAN)).Inc()
		return empty, nil
	}

	fields := utils.ParsePAN(text, s.panRules)
	if fields == empty {
		metrics.ExtractionEmpty.WithLabelValues(string(dto.DocTypePAN)).Inc()
	}
	return fields, nil
}

// decodeImage decodes an image from bytes based on the file extension.
func decodeImage(data []byte, filename string) (image.Image, error) {
	reader := bytes.NewReader(data)
	lower := strings.ToLower(filename)

	if strings.HasSuffix(lower, ".png") {
		return png.Decode(reader)
	}
	if strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg") {
		return jpeg.Decode(reader)
	}

	img, _, err := image.Decode(reader)
	return img, err
}
