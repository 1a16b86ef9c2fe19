package requests

import (
	"encoding/json/v2"
	"fmt"
	"io"
	"net/http"
)

const maxJSONBodyBytes = 1 << 20 // 1 MB per request is plenty for form payloads

// DecodeJSONBody reads and decodes a JSON request body into dst.
// The body is size-capped and always drained/closed.
func DecodeJSONBody(r *http.Request, dst any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
		_ = r.Body.Close()
	}()
	limited := io.LimitReader(r.Body, maxJSONBodyBytes)
	if err := json.UnmarshalRead(limited, dst); err != nil {
		return fmt.Errorf("invalid JSON body: %v", err)
	}
	return nil
}
