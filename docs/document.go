package docs

import "time"

// Document is an immutable generated quote document. Bytes are cached by the
// session layer and served for repeated download/print/share without
// recomputation, valid only while Revision still matches the live quote state.
type Document struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Bytes     []byte    `json:"bytes"`
	Revision  int64     `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
}

func (d *Document) Size() int {
	return len(d.Bytes)
}
