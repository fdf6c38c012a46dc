package client

import (
	"context"

	"github.com/dmitrijs2005/imagenstudio/internal/client/models"
)

// ImageGenerator is the boundary to the remote image generation API.
//
// GenerateImage makes exactly one attempt and returns the image as a data
// URI. It fails with ErrMissingAPIKey before any network I/O when no key is
// configured, with ErrNoImages when the API answered without an image, with
// ErrAPI when the API rejected the request, and with the transport error
// otherwise.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, ratio models.AspectRatio) (string, error)
}
