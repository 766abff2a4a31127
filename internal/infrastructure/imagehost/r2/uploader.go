package r2

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fmma-backend/internal/domain/media"
	idgen "github.com/riskibarqy/fmma-backend/internal/platform/id"
	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
)

const keyPrefix = "images"

type Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader stores images in a Cloudflare R2 bucket served from a public base URL.
type Uploader struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
	idGen         idgen.Generator
	logger        *logging.Logger
}

func NewUploader(ctx context.Context, cfg Config, idGen idgen.Generator, logger *logging.Logger) (*Uploader, error) {
	if cfg.AccountID == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Bucket == "" || cfg.PublicBaseURL == "" {
		return nil, crerr.New("invalid r2 configuration: account, credentials, bucket and public base url are required")
	}

	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "load r2 sdk config")
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return newUploader(client, cfg.Bucket, cfg.PublicBaseURL, idGen, logger), nil
}

func newUploader(client objectPutter, bucket, publicBaseURL string, idGen idgen.Generator, logger *logging.Logger) *Uploader {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewRandomGenerator()
	}

	return &Uploader{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		idGen:         idGen,
		logger:        logger,
	}
}

func (u *Uploader) Upload(ctx context.Context, image media.Image) (string, error) {
	if image.Empty() {
		return "", crerr.New("image payload is empty")
	}

	objectID, err := u.idGen.NewID()
	if err != nil {
		return "", crerr.Wrap(err, "generate object key")
	}
	key := path.Join(keyPrefix, objectID+extension(image))

	contentType := strings.TrimSpace(image.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(image.Data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(image.Data))),
	})
	if err != nil {
		return "", crerr.Wrapf(err, "put r2 object key=%s", key)
	}

	u.logger.InfoContext(ctx, "image uploaded", "host", "r2", "key", key, "bytes", len(image.Data))
	return u.publicBaseURL + "/" + key, nil
}

func extension(image media.Image) string {
	if ext := strings.ToLower(filepath.Ext(strings.TrimSpace(image.Filename))); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(image.ContentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
