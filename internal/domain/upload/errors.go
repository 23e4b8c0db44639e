package upload

import "errors"

var (
	ErrEmptyFile = errors.New("image file is empty")
	ErrTooLarge  = errors.New("image exceeds maximum allowed size")
	ErrNotImage  = errors.New("file is not an image")
)
