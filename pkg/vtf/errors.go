package vtf

import "errors"

// Parse and conversion failures. Callers match these with errors.Is;
// return sites wrap them with position and size context.
var (
	ErrTruncatedInput         = errors.New("vtf: truncated input")
	ErrBadSignature           = errors.New("vtf: bad signature")
	ErrUnsupportedVersion     = errors.New("vtf: unsupported version")
	ErrUnsupportedPixelFormat = errors.New("vtf: unsupported pixel format")
	ErrInsufficientData       = errors.New("vtf: insufficient image data")
	ErrInvalidHeader          = errors.New("vtf: invalid header")
)
