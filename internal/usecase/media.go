package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fmma-backend/internal/domain/media"
)

// uploadImage returns an empty URL when no image was attached.
func uploadImage(ctx context.Context, uploader media.Uploader, image media.Image) (string, error) {
	if image.Empty() {
		return "", nil
	}
	if uploader == nil {
		return "", fmt.Errorf("%w: image host is not configured", ErrDependencyUnavailable)
	}

	url, err := uploader.Upload(ctx, image)
	if err != nil {
		return "", fmt.Errorf("%w: upload image: %w", ErrDependencyUnavailable, err)
	}
	return url, nil
}
