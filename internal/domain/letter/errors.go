package letter

import "errors"

var (
	ErrLetterNotFound   = errors.New("Letter request not found")
	ErrInvalidType      = errors.New("Unknown letter type")
	ErrAlreadyHandled   = errors.New("Letter request has already been handled")
	ErrDocumentRequired = errors.New("A document URL is required to issue a letter")
)
