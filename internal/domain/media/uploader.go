package media

import "context"

// Image is a binary payload received from a multipart upload.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (i Image) Empty() bool {
	return len(i.Data) == 0
}

// Uploader stores an image on a public host and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, image Image) (string, error)
}
