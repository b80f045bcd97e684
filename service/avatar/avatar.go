package avatar

import (
	"context"
	"image/png"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/orcaman/writerseeker"

	"github.com/traPtitech/pinboard/utils/imaging"
	"github.com/traPtitech/pinboard/utils/storage"
)

// PathPrefix 生成したアバター画像を配信するパスの接頭辞
const PathPrefix = "/media/"

// Generator ユーザーのデフォルトアバター生成器
type Generator struct {
	fs storage.FileStorage
}

// NewGenerator Generatorを生成します
func NewGenerator(fs storage.FileStorage) *Generator {
	return &Generator{fs: fs}
}

// Generate saltからidenticonを生成してファイルストレージに保存し、配信パスを返します
func (g *Generator) Generate(ctx context.Context, salt string) (string, error) {
	img, err := imaging.GenerateIcon(salt)
	if err != nil {
		return "", err
	}

	buf := &writerseeker.WriterSeeker{}
	if err := png.Encode(buf, img); err != nil {
		return "", err
	}

	key := "avatars/" + uuid.Must(uuid.NewV7()).String() + ".png"
	if err := g.fs.SaveByKey(ctx, buf.BytesReader(), key, "image/png"); err != nil {
		return "", err
	}
	return PathPrefix + key, nil
}

// Delete Generateで保存したアバター画像を削除します
func (g *Generator) Delete(ctx context.Context, path string) error {
	key, ok := strings.CutPrefix(path, PathPrefix)
	if !ok || !strings.HasPrefix(key, "avatars/") {
		return nil
	}
	return g.fs.DeleteByKey(ctx, key)
}
