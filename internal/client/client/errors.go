package client

import "errors"

var (
	ErrMissingAPIKey = errors.New("API_KEY environment variable not set. Please make sure it is configured.")
	ErrNoImages      = errors.New("The API did not generate any images. This might be due to the prompt being blocked by safety filters. Please try a different prompt.")
	ErrAPI           = errors.New("image API error")
	ErrBadDataURI    = errors.New("malformed data URI")
)
