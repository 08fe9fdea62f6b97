package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	MaxFileSize       int64
	// PageTextMinChars is the per-page threshold under which extracted PDF
	// text is judged noise and the scanned-page OCR fallback kicks in.
	PageTextMinChars int
	// OCREnabled controls whether a Tesseract client is wired at all; when
	// false, image uploads resolve to a manual-entry result.
	OCREnabled bool
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	pageTextMinChars := 80
	if v := os.Getenv("PAGE_TEXT_MIN_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageTextMinChars = n
		}
	}

	ocrEnabled := true
	if v := os.Getenv("OCR_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			ocrEnabled = b
		}
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
		PageTextMinChars:  pageTextMinChars,
		OCREnabled:        ocrEnabled,
	}
}
