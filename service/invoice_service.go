package service

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/invoicetrack/ocr-invoice-extraction/config"
	"github.com/invoicetrack/ocr-invoice-extraction/dto"
	"github.com/invoicetrack/ocr-invoice-extraction/utils"
)

// OCRClient recognizes text in document images. *client.TesseractClient
// implements it; a nil client means no OCR is wired and scanned documents
// resolve to manual-entry results.
type OCRClient interface {
	ExtractTextFromBytes(data []byte) (string, error)
	ExtractTextFromImage(img image.Image) (string, error)
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".tiff", ".bmp"}

// maxQRReferenceLen bounds a QR payload accepted as an invoice reference.
const maxQRReferenceLen = 50

// InvoiceService orchestrates collaborator text extraction and the invoice
// parser into a single structured result. The OCR client is optional: when
// it is nil, image files and scanned PDF pages fall back to manual entry.
type InvoiceService struct {
	pdfProcessor PDFProcessor
	ocrClient    OCRClient
	parser       *utils.InvoiceParser
	pageTextMin  int
}

func NewInvoiceService(pdfProcessor PDFProcessor, ocrClient OCRClient, cfg *config.Config) *InvoiceService {
	return &InvoiceService{
		pdfProcessor: pdfProcessor,
		ocrClient:    ocrClient,
		parser:       utils.NewInvoiceParser(utils.DefaultPatternTable(), utils.DefaultSegmenterConfig()),
		pageTextMin:  cfg.PageTextMinChars,
	}
}

// ExtractFromBytes sniffs the file type, extracts raw text through the
// appropriate collaborator and parses it into an invoice record. Every
// failure is a tagged result with a remediation message; nothing propagates
// as an error.
func (s *InvoiceService) ExtractFromBytes(data []byte, filename string) *dto.ExtractionResult {
	ocrAvailable := s.ocrClient != nil

	if len(data) == 0 {
		return s.failure(dto.ErrEmptyFile, "File is empty")
	}

	name := strings.ToLower(filename)
	isPDF := strings.HasSuffix(name, ".pdf") || bytes.HasPrefix(data, []byte("%PDF"))
	isImage := hasImageExtension(name)

	var text, qrReference string

	switch {
	case isPDF:
		var err error
		text, qrReference, err = s.extractPDFText(data)
		if err != nil {
			log.Printf("PDF extraction failed for %s: %v", filename, err)
			return s.failure(dto.ErrPDFExtractionFailed,
				fmt.Sprintf("Failed to extract text from PDF: %v. Please enter invoice details manually.", err))
		}
	case isImage:
		if !ocrAvailable {
			return s.failure(dto.ErrImageFileNotSupported,
				"Image files require manual entry (OCR not available). Please save as PDF or enter details manually.")
		}
		var err error
		text, err = s.ocrClient.ExtractTextFromBytes(data)
		if err != nil {
			log.Printf("Image OCR failed for %s: %v", filename, err)
			return s.failure(dto.ErrImageFileNotSupported,
				"Could not read the image file. Please save as PDF or enter details manually.")
		}
	default:
		return s.failure(dto.ErrUnsupportedFileType,
			"Please upload a PDF file (images and other formats require manual entry).")
	}

	if strings.TrimSpace(text) == "" {
		return s.failure(dto.ErrNoTextExtracted,
			"No text found in document. Please enter invoice details manually.")
	}

	record, err := s.parseText(text)
	if err != nil {
		log.Printf("Failed to parse invoice data for %s: %v", filename, err)
		result := s.failure(dto.ErrParsingFailed,
			"Could not extract structured data from the document. Please enter invoice details manually.")
		result.RawText = text
		return result
	}

	if record.Reference == "" && qrReference != "" {
		record.Reference = qrReference
	}

	return &dto.ExtractionResult{
		Success:      true,
		Message:      "Invoice data extracted successfully",
		OCRAvailable: ocrAvailable,
		Header:       record.Header(),
		Items:        record.Items,
		RawText:      text,
	}
}

// extractPDFText pulls per-page text and joins the pages with separator
// markers. A page whose text is shorter than the configured threshold is
// treated as scanned: its raster is OCR'd and the result replaces the page's
// text, so markers stay aligned with the real page count and the noise never
// reaches the parser. QR codes on page images may carry a document
// reference, returned separately.
func (s *InvoiceService) extractPDFText(data []byte) (string, string, error) {
	pages, err := s.pdfProcessor.ExtractPageTexts(data)
	if err != nil {
		return "", "", err
	}

	var qrReference string
	if s.ocrClient != nil && hasScannedPage(pages, s.pageTextMin) {
		images, imgErr := s.pdfProcessor.ExtractPageImages(data)
		if imgErr != nil {
			log.Printf("Failed to extract images from scanned PDF: %v", imgErr)
		}

		for _, img := range images {
			if ref, qrErr := decodeQRReference(img); qrErr == nil {
				qrReference = ref
				break
			}
		}

		// scanned pages carry one raster each, in page order
		for i, pageText := range pages {
			if len(strings.TrimSpace(pageText)) >= s.pageTextMin || i >= len(images) {
				continue
			}
			ocrText, ocrErr := s.ocrClient.ExtractTextFromImage(images[i])
			if ocrErr != nil {
				log.Printf("OCR failed for PDF page %d: %v", i+1, ocrErr)
				continue
			}
			pages[i] = ocrText
		}
	}

	// Blank pages contribute nothing; a document of only blank pages must
	// come back empty so the caller reports no text, not bare page markers.
	var fullText strings.Builder
	for i, pageText := range pages {
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		fmt.Fprintf(&fullText, "\n--- Page %d ---\n%s", i+1, pageText)
	}
	return fullText.String(), qrReference, nil
}

// parseText runs the structural parser, converting an unexpected panic into
// an error so the caller can surface a tagged parsing failure instead.
func (s *InvoiceService) parseText(text string) (record dto.InvoiceRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invoice parsing panicked: %v", r)
		}
	}()
	record = s.parser.Parse(text)
	return record, nil
}

func (s *InvoiceService) failure(kind, message string) *dto.ExtractionResult {
	return &dto.ExtractionResult{
		Success:      false,
		Error:        kind,
		Message:      message,
		OCRAvailable: s.ocrClient != nil,
		Items:        []dto.LineItem{},
	}
}

func hasScannedPage(pages []string, minChars int) bool {
	for _, pageText := range pages {
		if len(strings.TrimSpace(pageText)) < minChars {
			return true
		}
	}
	return false
}

func hasImageExtension(name string) bool {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// decodeQRReference attempts to read a QR code from a page image and
// returns its payload when it is short enough to be a document reference.
func decodeQRReference(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decode QR code: %w", err)
	}

	payload := strings.TrimSpace(result.GetText())
	if payload == "" || len(payload) > maxQRReferenceLen || strings.ContainsAny(payload, "\n\r") {
		return "", fmt.Errorf("QR payload does not look like a reference")
	}
	return payload, nil
}
