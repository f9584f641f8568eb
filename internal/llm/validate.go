package llm

import (
	"encoding/json"
	"fmt"

	"github.com/onguard-app/onguard/internal/llm/schema"
)

// decodeValidated parses raw as JSON, checks it structurally against the
// task's registered descriptor, and narrows it into out. Validation is
// all-or-nothing: no partial result ever escapes this function.
func decodeValidated(task schema.Task, raw string, out any) error {
	desc, ok := schema.ForTask(task)
	if !ok {
		return fmt.Errorf("no schema registered for task %s", task)
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return fmt.Errorf("%w: parse: %v", ErrMalformed, err)
	}
	if err := schema.Validate(desc, decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: narrow: %v", ErrMalformed, err)
	}
	return nil
}
