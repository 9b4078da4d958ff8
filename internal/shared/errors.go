package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog and pool errors
	ErrCatalogUnavailable = fmt.Errorf("catalog unavailable")
	ErrEmptyPool          = fmt.Errorf("no songs available")
	ErrInvalidRecord      = fmt.Errorf("record has no playable url")
	ErrTrackNotFound      = fmt.Errorf("track not found")

	// Download errors
	ErrDownloadFailed = fmt.Errorf("download failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
