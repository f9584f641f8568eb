package llm

import "errors"

// ErrRemote classifies transport failures, non-success responses, and empty
// bodies from the model API. Callers surface it as "service unavailable" and
// must not retry automatically.
var ErrRemote = errors.New("model service unavailable")

// ErrMalformed classifies responses that reached us but failed to parse as
// JSON or failed structural validation against the task schema. The UI shows
// it the same way as ErrRemote; the distinction exists for diagnostics.
var ErrMalformed = errors.New("malformed model response")
