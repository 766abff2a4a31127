package imgbb

import (
	"bytes"
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fmma-backend/internal/domain/media"
	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
	"github.com/riskibarqy/fmma-backend/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxResponseBytes = 1 << 20

var errImgBBTransient = crerr.New("imgbb transient failure")

type Config struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client relays images to the imgbb upload API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("imgbb circuit state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
		breaker:    breaker,
	}
}

func (c *Client) Upload(ctx context.Context, image media.Image) (string, error) {
	if c.apiKey == "" {
		return "", crerr.New("imgbb api key is not configured")
	}
	if image.Empty() {
		return "", crerr.New("image payload is empty")
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "imgbb circuit breaker rejected request", "state", string(c.breaker.State()))
		return "", fmt.Errorf("imgbb is temporarily unavailable: %w", err)
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)

	contentType, err := writeUploadForm(body, image)
	if err != nil {
		return "", crerr.Wrap(err, "build imgbb upload form")
	}

	endpoint := c.baseURL + "/1/upload?" + url.Values{"key": []string{c.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body.B))
	if err != nil {
		return "", crerr.Wrap(err, "create imgbb request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("imgbb.filename", image.Filename),
			attribute.Int("imgbb.image_bytes", len(image.Data)),
		)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: post imgbb upload: %v", errImgBBTransient, err)
		c.recordCircuitResult(callErr)
		return "", callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		callErr := fmt.Errorf("%w: read imgbb response: %v", errImgBBTransient, err)
		c.recordCircuitResult(callErr)
		return "", callErr
	}

	if resp.StatusCode/100 != 2 {
		var callErr error
		if isRetryableStatus(resp.StatusCode) {
			callErr = fmt.Errorf("%w: imgbb upload status=%d", errImgBBTransient, resp.StatusCode)
		} else {
			callErr = crerr.Newf("imgbb upload status=%d message=%q", resp.StatusCode, errorMessage(raw))
		}
		c.logger.WarnContext(ctx, "imgbb upload rejected", "status_code", resp.StatusCode, "filename", image.Filename)
		c.recordCircuitResult(callErr)
		return "", callErr
	}
	c.recordCircuitResult(nil)

	var decoded uploadResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return "", crerr.Wrap(err, "decode imgbb response")
	}
	imageURL := strings.TrimSpace(decoded.Data.URL)
	if imageURL == "" {
		return "", crerr.New("imgbb response has empty data.url")
	}

	c.logger.InfoContext(ctx, "image uploaded", "host", "imgbb", "filename", image.Filename, "bytes", len(image.Data))
	return imageURL, nil
}

func writeUploadForm(w io.Writer, image media.Image) (string, error) {
	form := multipart.NewWriter(w)
	if err := form.WriteField("image", base64.StdEncoding.EncodeToString(image.Data)); err != nil {
		return "", err
	}
	if name := imageName(image.Filename); name != "" {
		if err := form.WriteField("name", name); err != nil {
			return "", err
		}
	}
	if err := form.Close(); err != nil {
		return "", err
	}
	return form.FormDataContentType(), nil
}

func imageName(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type uploadResponse struct {
	Data struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func errorMessage(raw []byte) string {
	var decoded errorResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return decoded.Error.Message
}

// recordCircuitResult only counts transient failures against the breaker.
func (c *Client) recordCircuitResult(err error) {
	c.breaker.Record(err != nil && stderrors.Is(err, errImgBBTransient))
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
