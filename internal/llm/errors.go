package llm

import "errors"

// ErrStructuringFailed is returned when the model call fails or its output
// cannot be decoded into a valid expense record.
var ErrStructuringFailed = errors.New("llm structuring failed")
