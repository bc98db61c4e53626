package model

import "errors"

// ErrInvalidInput marks a request rejected before the pipeline starts:
// no input variant, more than one variant, or empty text.
var ErrInvalidInput = errors.New("invalid input")

// ErrUpstream marks a hard failure of an external capability (LLM transport,
// search credentials). Not recoverable locally; aborts the request it wraps.
var ErrUpstream = errors.New("upstream capability failure")
