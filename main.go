package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/invoicetrack/ocr-invoice-extraction/client"
	"github.com/invoicetrack/ocr-invoice-extraction/config"
	"github.com/invoicetrack/ocr-invoice-extraction/handler"
	"github.com/invoicetrack/ocr-invoice-extraction/service"
)

func main() {
	// Load .env if present; environment variables win either way
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	// Tesseract is optional: without it, scanned PDFs and image uploads
	// resolve to manual-entry results instead of OCR
	var ocrClient service.OCRClient
	if cfg.OCREnabled {
		tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
		defer tesseractClient.Close()
		ocrClient = tesseractClient
	} else {
		log.Println("OCR disabled; image files will require manual entry")
	}

	pdfProcessor := service.NewPDFProcessor()
	invoiceService := service.NewInvoiceService(pdfProcessor, ocrClient, cfg)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, cfg.MaxFileSize)

	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "OCR Invoice Extraction",
		})
	})

	api := router.Group("/api/v1")
	{
		invoices := api.Group("/invoices")
		{
			invoices.POST("/extract", invoiceHandler.ExtractInvoice)
		}
	}

	log.Printf("Starting OCR Invoice Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
