package services

import "errors"

// Sentinel errors returned by the dashboard service.
var (
	// ErrNoDataset is returned when views or metadata are requested before
	// any file has been uploaded.
	ErrNoDataset = errors.New("no dataset uploaded")
)
