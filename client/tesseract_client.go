package client

import (
	"fmt"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient runs OCR over card images. A fresh gosseract client is
// created per call because the underlying engine must not be shared
// across concurrent extractions.
type TesseractClient struct {
	dataPath string
	language string
}

func NewTesseractClient(dataPath, language string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
		language: language,
	}
}

// ExtractText runs OCR on raw image bytes and returns the recognized
// text. ext is the file extension including the dot (".png", ".jpg").
func (tc *TesseractClient) ExtractText(imageData []byte, ext string) (string, error) {
	tempFile, err := os.CreateTemp("", "ocr-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(imageData); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}
	tempFile.Close()

	return tc.extractText(tempFile.Name())
}

func (tc *TesseractClient) extractText(filePath string) (string, error) {
	ocr := gosseract.NewClient()
	defer ocr.Close()

	ocr.SetTessdataPrefix(tc.dataPath)

	if err := ocr.SetLanguage(tc.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := ocr.SetImage(filePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := ocr.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	return text, nil
}
