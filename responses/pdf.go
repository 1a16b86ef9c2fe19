package responses

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
)

func WritePDFBytesWithFilename(w http.ResponseWriter, filename string, PDFBytes []byte) {
	WritePDFResponseHeaders(w, filename, len(PDFBytes))
	_, err := w.Write(PDFBytes)
	if err != nil {
		log.Printf("[ERROR] writing PDF to response: %v", err)
	}
}

// WritePDFResponseHeaders write HTTP response headers for a PDF download. i.e. headers are frozen
func WritePDFResponseHeaders(w http.ResponseWriter, filename string, contentLength int) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(contentLength))
	w.WriteHeader(http.StatusOK) // Response Header Sent & Frozen
}
