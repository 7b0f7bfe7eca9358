package typewriter

import "errors"

var (
	// ErrNoPhrases indicates the presenter was created without any phrases.
	ErrNoPhrases = errors.New("typewriter: at least one phrase is required")
	// ErrEmptyPhrase indicates one of the phrases is blank.
	ErrEmptyPhrase = errors.New("typewriter: phrases must not be empty")
)
