package service

import "errors"

// Domain errors. Handlers map them to status codes with errors.Is.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")

	ErrNotFemale      = errors.New("Registration is restricted to female users only. Male users cannot register on this platform.")
	ErrTicketRequired = errors.New("Please complete Aadhaar verification first")
	ErrUserExists     = errors.New("Username or email is already registered")

	ErrNothingToUpdate = errors.New("nothing to update")

	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrFeedbackHidden   = errors.New("feedback is hidden")
	ErrInvalidDirection = errors.New("direction must be up or down")

	ErrInvalidQuickType = errors.New("type must be one of thumbs_up, thumbs_down, alert, star")
	ErrQuickNotFound    = errors.New("feedback not found")

	ErrUnknownTrain     = errors.New("unknown train")
	ErrDatasetNotLoaded = errors.New("Dataset not loaded")
	ErrStationNotFound  = errors.New("station not found")

	ErrContactNotFound = errors.New("contact not found")
	ErrImageRequired   = errors.New("No image uploaded")

	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)
