package themes

import "errors"

var (
	// ErrUnknownTheme indicates no manifest is registered under the name.
	ErrUnknownTheme = errors.New("themes: unknown theme")
	// ErrUnknownVariant indicates the manifest has no such variant.
	ErrUnknownVariant = errors.New("themes: unknown variant")
)
