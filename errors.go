package docxscrub

import "errors"

var (
	ErrInvalidContainer = errors.New("docxscrub: invalid container")
	ErrMalformedXML     = errors.New("docxscrub: malformed xml")
	ErrUnsupportedPart  = errors.New("docxscrub: unsupported part")
	ErrOutputExists     = errors.New("docxscrub: output exists")
	ErrLimitExceeded    = errors.New("docxscrub: limit exceeded")
	ErrValidation       = errors.New("docxscrub: validation failed")
)
