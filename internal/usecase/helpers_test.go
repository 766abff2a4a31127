package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/fmma-backend/internal/domain/media"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type recordingUploader struct {
	url     string
	err     error
	uploads []media.Image
}

func (u *recordingUploader) Upload(_ context.Context, image media.Image) (string, error) {
	u.uploads = append(u.uploads, image)
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	}
}
