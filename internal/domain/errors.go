package domain

import "errors"

// Domain errors
var (
	ErrItemNotFound          = errors.New("item not found")
	ErrPhotoNotFound         = errors.New("photo not found")
	ErrTitleRequired         = errors.New("item title is required")
	ErrTitleTooLong          = errors.New("item title must be 255 characters or less")
	ErrWhoAddedRequired      = errors.New("item author is required")
	ErrPhotoLimitExceeded    = errors.New("photo limit exceeded for item")
	ErrInvalidImportDocument = errors.New("import document must contain an items array")
	ErrStorageWrite          = errors.New("failed to write items to storage")
)
