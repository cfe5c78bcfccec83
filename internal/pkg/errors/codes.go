package errors

import "net/http"

var (
	// ErrMalformedTrack is returned when the upload body cannot be
	// parsed as a GPX document.
	ErrMalformedTrack = New(
		"MALFORMED_TRACK",
		"Upload is not a valid GPX track",
		http.StatusBadRequest,
	)

	// ErrInsufficientPoints is returned when a track parses but carries
	// fewer than two points, which is not enough to form a line.
	ErrInsufficientPoints = New(
		"INSUFFICIENT_POINTS",
		"Track must contain at least 2 points",
		http.StatusBadRequest,
	)

	ErrMissingTrackFile = New(
		"MISSING_TRACK_FILE",
		"Request carries no track file",
		http.StatusBadRequest,
	)

	ErrTrackTooLarge = New(
		"TRACK_TOO_LARGE",
		"Track file exceeds the upload size limit",
		http.StatusRequestEntityTooLarge,
	)

	// ErrStoreUnavailable is returned when the waterway store cannot be
	// reached or queried at request time. This is the only error that
	// also degrades the health check.
	ErrStoreUnavailable = New(
		"STORE_UNAVAILABLE",
		"Waterway store is unavailable",
		http.StatusServiceUnavailable,
	)

	// ErrStoreBuild occurs only while building the store. The failed
	// build is rolled back and the previous store is left untouched.
	ErrStoreBuild = New(
		"STORE_BUILD_FAILED",
		"Waterway store build failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
