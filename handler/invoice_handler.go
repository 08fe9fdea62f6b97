package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/invoicetrack/ocr-invoice-extraction/dto"
	"github.com/invoicetrack/ocr-invoice-extraction/service"
)

type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	maxFileSize    int64
}

func NewInvoiceHandler(invoiceService *service.InvoiceService, maxFileSize int64) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		maxFileSize:    maxFileSize,
	}
}

// ExtractInvoice handles the POST /invoices/extract endpoint
func (h *InvoiceHandler) ExtractInvoice(c *gin.Context) {
	log.Println("Received invoice extraction request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Invoice file is required", err)
		return
	}

	request := &dto.InvoiceExtractionRequest{File: fileHeader}
	if err := request.Validate(h.maxFileSize); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}

	// the service always answers with a structured result; degraded data is
	// preferable to an error response
	result := h.invoiceService.ExtractFromBytes(data, fileHeader.Filename)

	log.Printf("Invoice extraction for %s finished: success=%v items=%d",
		fileHeader.Filename, result.Success, len(result.Items))
	c.JSON(http.StatusOK, result)
}

// sendError sends a structured error response
func (h *InvoiceHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: message,
		Code:    statusCode,
	})
}
