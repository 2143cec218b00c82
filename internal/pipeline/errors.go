package pipeline

import "errors"

// ErrNoTextFound is returned when OCR succeeds but the image contains no
// readable text. The fault lies with the input image, not the service.
var ErrNoTextFound = errors.New("no text found in the image")
