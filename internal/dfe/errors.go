package dfe

import (
	"errors"
	"fmt"

	"github.com/frzanini/downloadSiegHub/internal/common"
)

// Failure taxonomy. Extractors surface these as typed errors; the dispatcher
// flattens them into the record's error string while the structured form
// stays available for logging.
var (
	ErrMalformedInput     = errors.New("malformed input")
	ErrUnknownDocument    = errors.New("unknown document kind")
	ErrMissingField       = errors.New("missing field")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

func malformedInput(reason string, cause error) error {
	if cause == nil {
		cause = ErrMalformedInput
	} else {
		cause = fmt.Errorf("%w: %w", ErrMalformedInput, cause)
	}
	return common.NewAppError("MALFORMED_INPUT", reason, cause)
}

func unknownDocument(rawTag string) error {
	return common.NewAppError("UNKNOWN_DOCUMENT",
		fmt.Sprintf("root tag %q matches no known document kind", rawTag),
		ErrUnknownDocument)
}

func missingField(kind Kind, field string) error {
	return common.NewAppError("MISSING_FIELD",
		fmt.Sprintf("%s not found in %s", field, kind),
		ErrMissingField)
}

func malformedTimestamp(raw string) error {
	return common.NewAppError("MALFORMED_TIMESTAMP",
		fmt.Sprintf("timestamp %q is not in an accepted format", raw),
		ErrMalformedTimestamp)
}
