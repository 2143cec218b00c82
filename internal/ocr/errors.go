package ocr

import "errors"

// ErrCredentialsMissing is returned when no usable Google Cloud credential
// can be assembled from the environment.
var ErrCredentialsMissing = errors.New("no valid google cloud credentials configured")

// ErrServiceError is returned when the Vision API accepted the request but
// reported a failure for the image.
var ErrServiceError = errors.New("vision service error")

// ErrExtractFailed is returned for any other failure while running text detection.
var ErrExtractFailed = errors.New("ocr extraction failed")
