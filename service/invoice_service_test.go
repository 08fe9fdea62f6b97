package service

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicetrack/ocr-invoice-extraction/config"
	"github.com/invoicetrack/ocr-invoice-extraction/dto"
)

type stubPDFProcessor struct {
	pages  []string
	images []image.Image
	err    error
}

func (s *stubPDFProcessor) ExtractPageTexts(data []byte) ([]string, error) {
	return s.pages, s.err
}

func (s *stubPDFProcessor) ExtractPageImages(data []byte) ([]image.Image, error) {
	return s.images, nil
}

type stubOCRClient struct {
	pageText string
}

func (s *stubOCRClient) ExtractTextFromBytes(data []byte) (string, error) {
	return s.pageText, nil
}

func (s *stubOCRClient) ExtractTextFromImage(img image.Image) (string, error) {
	return s.pageText, nil
}

func newTestService(proc PDFProcessor) *InvoiceService {
	return NewInvoiceService(proc, nil, &config.Config{PageTextMinChars: 80})
}

const samplePDFText = `Proforma Invoice
Code No : A01696
Date : 25/10/2025
PI No. : PI-1765632
Customer Name : STATEOIL TANZANIA LIMITED
Sr No. Item Code Description Rate Qty Value
2132004135 BF GOODRICH TYRE ALL-TERRAIN LRD RWL PCS 1,037,400.00 4 3,402,672.00
21019 WHEEL ALIGNMENT SMALL UNT 25,424.00
Sub Total : 3,484,144.00
Gross Value TSH 4,111,289.92`

func TestExtractFromBytesEmptyFile(t *testing.T) {
	service := newTestService(&stubPDFProcessor{})

	result := service.ExtractFromBytes(nil, "invoice.pdf")

	assert.False(t, result.Success)
	assert.Equal(t, dto.ErrEmptyFile, result.Error)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}

func TestExtractFromBytesUnsupportedFileType(t *testing.T) {
	service := newTestService(&stubPDFProcessor{})

	result := service.ExtractFromBytes([]byte("not an invoice"), "invoice.docx")

	assert.False(t, result.Success)
	assert.Equal(t, dto.ErrUnsupportedFileType, result.Error)
	assert.Empty(t, result.Items)
}

func TestExtractFromBytesImageWithoutOCR(t *testing.T) {
	service := newTestService(&stubPDFProcessor{})

	result := service.ExtractFromBytes([]byte{0xFF, 0xD8, 0xFF}, "scan.jpg")

	assert.False(t, result.Success)
	assert.Equal(t, dto.ErrImageFileNotSupported, result.Error)
	assert.False(t, result.OCRAvailable)
}

func TestExtractFromBytesPDFExtractionFailed(t *testing.T) {
	service := newTestService(&stubPDFProcessor{err: errors.New("malformed xref table")})

	result := service.ExtractFromBytes([]byte("%PDF-1.4 garbage"), "invoice.pdf")

	assert.False(t, result.Success)
	assert.Equal(t, dto.ErrPDFExtractionFailed, result.Error)
	assert.Contains(t, result.Message, "manually")
}

func TestExtractFromBytesNoTextExtracted(t *testing.T) {
	service := newTestService(&stubPDFProcessor{pages: []string{"", "   \n "}})

	result := service.ExtractFromBytes([]byte("%PDF-1.4"), "invoice.pdf")

	assert.False(t, result.Success)
	assert.Equal(t, dto.ErrNoTextExtracted, result.Error)
}

func TestExtractFromBytesSuccess(t *testing.T) {
	service := newTestService(&stubPDFProcessor{pages: []string{samplePDFText}})

	result := service.ExtractFromBytes([]byte("%PDF-1.4"), "invoice.pdf")

	require.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.False(t, result.OCRAvailable)

	assert.Equal(t, "A01696", result.Header.CodeNo)
	assert.Equal(t, "PI-1765632", result.Header.InvoiceNo)
	assert.Equal(t, "STATEOIL TANZANIA LIMITED", result.Header.CustomerName)
	require.NotNil(t, result.Header.Total)
	assert.Equal(t, "4111289.92", result.Header.Total.String())

	require.Len(t, result.Items, 2)
	assert.Equal(t, "2132004135", result.Items[0].Code)
	assert.Equal(t, 4, result.Items[0].Quantity)
	assert.Equal(t, 1, result.Items[1].Quantity)

	assert.Contains(t, result.RawText, "--- Page 1 ---")
	assert.Contains(t, result.RawText, "Code No : A01696")
}

func TestExtractFromBytesScannedPageOCRReplacesNoise(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	service := NewInvoiceService(
		&stubPDFProcessor{pages: []string{"Total 3"}, images: []image.Image{img}},
		&stubOCRClient{pageText: samplePDFText},
		&config.Config{PageTextMinChars: 80},
	)

	result := service.ExtractFromBytes([]byte("%PDF-1.4"), "scan.pdf")

	require.True(t, result.Success)
	assert.True(t, result.OCRAvailable)

	// the truncated noise text must not survive to shadow the OCR'd values
	assert.NotContains(t, result.RawText, "Total 3")
	assert.Equal(t, "A01696", result.Header.CodeNo)
	require.NotNil(t, result.Header.Total)
	assert.Equal(t, "4111289.92", result.Header.Total.String())
	require.Len(t, result.Items, 2)
}

func TestExtractFromBytesScannedPageMarkersStayAligned(t *testing.T) {
	images := []image.Image{
		image.NewGray(image.Rect(0, 0, 64, 64)),
		image.NewGray(image.Rect(0, 0, 64, 64)),
	}
	service := NewInvoiceService(
		&stubPDFProcessor{pages: []string{samplePDFText, "x"}, images: images},
		&stubOCRClient{pageText: "ADDITIONAL TERMS AND NOTES"},
		&config.Config{PageTextMinChars: 80},
	)

	result := service.ExtractFromBytes([]byte("%PDF-1.4"), "scan.pdf")

	require.True(t, result.Success)

	// the vector page keeps its text; the scanned page's marker keeps its
	// number and carries the OCR result instead of the noise
	assert.Contains(t, result.RawText, "--- Page 1 ---")
	assert.Contains(t, result.RawText, "--- Page 2 ---\nADDITIONAL TERMS AND NOTES")
	assert.NotContains(t, result.RawText, "--- Page 3 ---")
	assert.NotContains(t, result.RawText, "--- Page 2 ---\nx")
}

func TestExtractFromBytesSniffsPDFMagic(t *testing.T) {
	service := newTestService(&stubPDFProcessor{pages: []string{samplePDFText}})

	// no .pdf extension, but the bytes carry the PDF magic
	result := service.ExtractFromBytes([]byte("%PDF-1.7 body"), "upload.bin")

	assert.True(t, result.Success)
	assert.Equal(t, "A01696", result.Header.CodeNo)
}
