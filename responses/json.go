package responses

import (
	"encoding/json/v2"
	"log"
	"net/http"
)

// EncodeWriteJSON Encode & Write Payload as JSON Stream to the Response
func EncodeWriteJSON(w http.ResponseWriter, HTTPStatusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatusCode) // Response Header Sent & Frozen
	if err := json.MarshalWrite(w, payload); err != nil {
		log.Printf("[ERROR] failed to write JSON Stream to Response: %v", err)
	}
}

// WriteSimpleErrorJSON is a helper func same as EncodeWriteJSON
// but wrapping a string message into a simple error Message without app logic code
func WriteSimpleErrorJSON(w http.ResponseWriter, HTTPStatusCode int, msg string) {
	payload := Message{Type: "error", Message: msg}
	EncodeWriteJSON(w, HTTPStatusCode, payload)
}

// WriteSimpleInfoJSON wraps a string message into an info Message
func WriteSimpleInfoJSON(w http.ResponseWriter, HTTPStatusCode int, msg string) {
	payload := Message{Type: "info", Message: msg}
	EncodeWriteJSON(w, HTTPStatusCode, payload)
}
