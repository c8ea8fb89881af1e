// internals/helpers/oss/image_webp.go
package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"schoolerp_backend/internals/configs"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image format (use jpg/png/webp)")
	MaxUploadSize       = int64(5 * 1024 * 1024)
)

type WebPOptions struct {
	MaxW        int     // resize keep-aspect
	MaxH        int
	TargetKB    int     // 0 = single pass at Quality
	Quality     float32
	MinQ        float32 // quality search bounds
	MaxQ        float32
	ToleranceKB int
}

func DefaultWebPOptions() WebPOptions {
	return WebPOptions{
		MaxW:        configs.GetEnvInt("IMAGE_WEBP_MAX_W", 800),
		MaxH:        configs.GetEnvInt("IMAGE_WEBP_MAX_H", 800),
		TargetKB:    configs.GetEnvInt("IMAGE_WEBP_TARGET_KB", 0),
		Quality:     80,
		MinQ:        45,
		MaxQ:        85,
		ToleranceKB: 8,
	}
}

/* =======================================================================
   Decode (jpeg/png/gif/webp) with MIME sniff
======================================================================= */

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case strings.Contains(ct, "webp") || ext == ".webp":
		return webp.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "png"), strings.Contains(ct, "gif"):
		return imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	default:
		return nil, ErrUnsupportedImage
	}
}

/* =======================================================================
   Encode WebP
   - TargetKB > 0 → binary search quality until <= target+tol
   - TargetKB = 0 → single encode at Quality
======================================================================= */

func encodeToWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	encodeQ := func(q float32) ([]byte, error) {
		buf := new(bytes.Buffer)
		if err := webp.Encode(buf, img, &webp.Options{Quality: q}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	if opt.TargetKB <= 0 {
		q := opt.Quality
		if q <= 0 {
			q = 80
		}
		return encodeQ(q)
	}

	limit := (opt.TargetKB + opt.ToleranceKB) * 1024
	low, high := opt.MinQ, opt.MaxQ
	if low <= 0 {
		low = 45
	}
	if high <= 0 {
		high = 85
	}
	var best []byte
	for i := 0; i < 7; i++ {
		q := (low + high) / 2
		data, err := encodeQ(q)
		if err != nil {
			return nil, err
		}
		if len(data) <= limit {
			best = data
			low = q // fits, try better quality
		} else {
			high = q
		}
	}
	if best == nil {
		return encodeQ(opt.MinQ)
	}
	return best, nil
}

// ConvertToWebP reads → decodes → fits into MaxW×MaxH → encodes webp.
func ConvertToWebP(r io.Reader, filename string, opts WebPOptions) ([]byte, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	if opts.MaxW > 0 && opts.MaxH > 0 {
		b := img.Bounds()
		if b.Dx() > opts.MaxW || b.Dy() > opts.MaxH {
			img = imaging.Fit(img, opts.MaxW, opts.MaxH, imaging.Lanczos)
		}
	}
	return encodeToWebP(img, opts)
}

// UploadAsWebP recompresses a multipart image and stores it under dir.
// Returns the public URL and the object key.
func UploadAsWebP(ctx context.Context, store ObjectStore, dir string, fh *multipart.FileHeader, opts WebPOptions) (string, string, error) {
	if store == nil {
		return "", "", ErrNotConfigured
	}
	if fh == nil {
		return "", "", fmt.Errorf("nil file header")
	}
	if fh.Size > MaxUploadSize {
		return "", "", fmt.Errorf("file too large (max %d bytes)", MaxUploadSize)
	}
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := ConvertToWebP(src, fh.Filename, opts)
	if err != nil {
		return "", "", err
	}
	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := BuildObjectKey("", dir, base+".webp")
	url, err := store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "image/webp")
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}

// UploadFile stores a multipart file as is.
func UploadFile(ctx context.Context, store ObjectStore, dir string, fh *multipart.FileHeader) (string, string, error) {
	if store == nil {
		return "", "", ErrNotConfigured
	}
	if fh == nil {
		return "", "", fmt.Errorf("nil file header")
	}
	if fh.Size > MaxUploadSize*2 {
		return "", "", fmt.Errorf("file too large (max %d bytes)", MaxUploadSize*2)
	}
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	key := BuildObjectKey("", dir, fh.Filename)
	url, err := store.Put(ctx, key, src, fh.Size, ContentTypeFor(fh.Filename, fh.Header.Get("Content-Type")))
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}
