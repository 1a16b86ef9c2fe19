package docs

// CompositionError - document generation preconditions unmet, or rendering
// failed. Recoverable: the caller informs the user, no partial document is
// produced.
type CompositionError struct {
	Reason string
}

func (e *CompositionError) Error() string {
	return "cannot compose document: " + e.Reason
}

// AssetError - the watermark source is missing or unusable. Always recovered
// inside the composer by degrading to a document without a watermark; never
// surfaced as a failure of the whole operation.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return "unusable watermark asset " + e.Path + ": " + e.Err.Error()
}

func (e *AssetError) Unwrap() error {
	return e.Err
}
