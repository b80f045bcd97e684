package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/traPtitech/pinboard/service/imaging"
)

func testUploadRequest() UploadRequest {
	return UploadRequest{
		Filename:    "../cat.png",
		ContentType: "image/png",
		Body:        bytes.NewReader([]byte("fake image bytes")),
		Meta:        imaging.Meta{Width: 1600, Height: 900, Format: "png"},
		Transformation: imaging.Transformation{
			Width: 1600, Height: 2844, PadResize: true, Background: "FFFFFF",
		},
	}
}

func TestImageKit_Upload(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "private_key", user)
			assert.Equal(t, "", pass)

			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "cat.png", r.FormValue("fileName"))
			assert.Equal(t, "pins", r.FormValue("folder"))
			assert.Equal(t, "true", r.FormValue("useUniqueFileName"))
			assert.JSONEq(t, `{"pre":"w-1600,h-2844,cm-pad_resize,bg-FFFFFF"}`, r.FormValue("transformation"))

			f, _, err := r.FormFile("file")
			require.NoError(t, err)
			b, _ := io.ReadAll(f)
			assert.Equal(t, "fake image bytes", string(b))

			w.Header().Set("Content-Type", "application/json")
			_ = jsoniter.NewEncoder(w).Encode(map[string]any{
				"fileId":   "abc",
				"filePath": "/pins/cat_x1.png",
				"url":      "https://ik.imagekit.io/demo/pins/cat_x1.png",
				"width":    1600,
				"height":   2844,
			})
		}))
		defer srv.Close()

		ik := NewImageKit(ImageKitConfig{PrivateKey: "private_key", UploadURL: srv.URL, Folder: "pins"}, zap.NewNop())
		res, err := ik.Upload(context.Background(), testUploadRequest())
		require.NoError(t, err)
		assert.Equal(t, &UploadResult{FilePath: "/pins/cat_x1.png", Width: 1600, Height: 2844}, res)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Your request contains invalid transformation"}`))
		}))
		defer srv.Close()

		ik := NewImageKit(ImageKitConfig{PrivateKey: "k", UploadURL: srv.URL}, zap.NewNop())
		_, err := ik.Upload(context.Background(), testUploadRequest())
		assert.ErrorIs(t, err, ErrUploadFailed)
		assert.Contains(t, err.Error(), "invalid transformation")
	})

	t.Run("breaker opens after consecutive failures", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		ik := NewImageKit(ImageKitConfig{
			PrivateKey:      "k",
			UploadURL:       srv.URL,
			BreakerEnabled:  true,
			BreakerFailures: 2,
		}, zap.NewNop())
		for i := 0; i < 2; i++ {
			_, err := ik.Upload(context.Background(), testUploadRequest())
			assert.ErrorIs(t, err, ErrUploadFailed)
		}
		_, err := ik.Upload(context.Background(), testUploadRequest())
		assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
		assert.EqualValues(t, 2, calls.Load())
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ik := NewImageKit(ImageKitConfig{PrivateKey: "k", UploadURL: srv.URL}, zap.NewNop())
		_, err := ik.Upload(ctx, testUploadRequest())
		assert.ErrorIs(t, err, context.Canceled)
	})
}
