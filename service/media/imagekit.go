package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// DefaultImageKitUploadURL ImageKitのアップロードAPIのURL
const DefaultImageKitUploadURL = "https://upload.imagekit.io/api/v1/files/upload"

// ImageKitConfig ImageKit設定
type ImageKitConfig struct {
	// PrivateKey アップロードAPIのBasic認証に使う秘密鍵
	PrivateKey string
	// UploadURL アップロードAPIのURL
	UploadURL string
	// Folder アップロード先のフォルダ
	Folder string
	// Timeout アップロードのタイムアウト。0の場合はタイムアウトしません
	Timeout time.Duration
	// BreakerEnabled trueの場合、連続した失敗でサーキットブレーカーを開きます
	BreakerEnabled bool
	// BreakerFailures サーキットブレーカーを開く連続失敗回数
	BreakerFailures uint32
}

// ImageKit 変換をImageKitのアップロード時変換(pre-transformation)に委譲するUploader
type ImageKit struct {
	c       ImageKitConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*UploadResult]
	logger  *zap.Logger
}

type imageKitUploadResponse struct {
	FileID   string `json:"fileId"`
	Name     string `json:"name"`
	FilePath string `json:"filePath"`
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type imageKitErrorResponse struct {
	Message string `json:"message"`
}

// NewImageKit ImageKitクライアントを生成します
func NewImageKit(c ImageKitConfig, logger *zap.Logger) *ImageKit {
	if c.UploadURL == "" {
		c.UploadURL = DefaultImageKitUploadURL
	}
	l := logger.Named("media")
	ik := &ImageKit{
		c:      c,
		client: &http.Client{Timeout: c.Timeout},
		logger: l,
	}
	if c.BreakerEnabled {
		failures := c.BreakerFailures
		if failures == 0 {
			failures = 5
		}
		ik.breaker = gobreaker.NewCircuitBreaker[*UploadResult](gobreaker.Settings{
			Name:    "imagekit",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				l.Warn("circuit breaker state changed",
					zap.String("name", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to))
			},
		})
	}
	return ik
}

// Upload implements Uploader interface.
func (ik *ImageKit) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if ik.breaker == nil {
		return ik.upload(ctx, req)
	}
	return ik.breaker.Execute(func() (*UploadResult, error) {
		return ik.upload(ctx, req)
	})
}

func (ik *ImageKit) upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if _, err := req.Body.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", path.Base(req.Filename))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, req.Body); err != nil {
		return nil, err
	}

	transformation, err := jsoniter.ConfigFastest.MarshalToString(map[string]string{"pre": req.Transformation.String()})
	if err != nil {
		return nil, err
	}
	fields := map[string]string{
		"fileName":          path.Base(req.Filename),
		"useUniqueFileName": "true",
		"transformation":    transformation,
	}
	if ik.c.Folder != "" {
		fields["folder"] = ik.c.Folder
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ik.c.UploadURL, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(ik.c.PrivateKey, "")

	res, err := ik.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var e imageKitErrorResponse
		_ = jsoniter.ConfigFastest.NewDecoder(res.Body).Decode(&e)
		ik.logger.Warn("imagekit upload failed",
			zap.Int("status", res.StatusCode),
			zap.String("message", e.Message))
		if e.Message == "" {
			e.Message = res.Status
		}
		return nil, fmt.Errorf("%w: %s", ErrUploadFailed, e.Message)
	}

	var r imageKitUploadResponse
	if err := jsoniter.ConfigFastest.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	// 配信URLはクライアントがエンドポイントと結合する
	return &UploadResult{
		FilePath: r.FilePath,
		Width:    r.Width,
		Height:   r.Height,
	}, nil
}
