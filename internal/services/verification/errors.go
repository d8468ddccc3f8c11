package verification

import "errors"

// Service errors
var (
	ErrInvalidStatus       = errors.New("invalid document status")
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrMissingReason       = errors.New("rejection reason is required")
)
