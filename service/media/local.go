package media

import (
	"context"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/orcaman/writerseeker"
	"go.uber.org/zap"

	"github.com/traPtitech/pinboard/service/imaging"
	"github.com/traPtitech/pinboard/utils/storage"
)

// MediaPathPrefix ファイルストレージに保存された画像を配信するパスの接頭辞
const MediaPathPrefix = "/media/"

// LocalRenderer サーバー内で変換を適用し、ファイルストレージに保存するUploader
type LocalRenderer struct {
	processor imaging.Processor
	storage   storage.FileStorage
	logger    *zap.Logger
}

// NewLocalRenderer LocalRendererを生成します
func NewLocalRenderer(processor imaging.Processor, fs storage.FileStorage, logger *zap.Logger) *LocalRenderer {
	return &LocalRenderer{
		processor: processor,
		storage:   fs,
		logger:    logger.Named("media"),
	}
}

// Upload implements Uploader interface.
func (r *LocalRenderer) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.Meta.Animated {
		return nil, ErrAnimatedNotSupported
	}

	img, err := r.processor.Render(ctx, req.Body, req.Transformation)
	if err != nil {
		return nil, err
	}

	buf := &writerseeker.WriterSeeker{}
	ext, contentType := encodingOf(req.Meta.Format)
	switch contentType {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
	default:
		err = png.Encode(buf, img)
	}
	if err != nil {
		return nil, err
	}

	key := "pins/" + uuid.Must(uuid.NewV7()).String() + ext
	if err := r.storage.SaveByKey(ctx, buf.BytesReader(), key, contentType); err != nil {
		return nil, err
	}
	r.logger.Debug("pin image rendered",
		zap.String("key", key),
		zap.Stringer("transformation", req.Transformation))

	b := img.Bounds()
	return &UploadResult{
		FilePath: MediaPathPrefix + key,
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}

func encodingOf(format string) (ext, contentType string) {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return ".jpg", "image/jpeg"
	default:
		return ".png", "image/png"
	}
}
