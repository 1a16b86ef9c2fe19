package responses

type Message struct {
	Type    string `json:"type"` // "error", "info", etc
	Message string `json:"message"`
	Code    int    `json:"code,omitzero"` // application-level logic code
}
