// internals/helpers/oss/storage.go
package helper

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"schoolerp_backend/internals/configs"
)

var ErrNotConfigured = errors.New("object storage is not configured")

// ObjectStore is the upload target for photos and attachments.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (publicURL string, err error)
	Delete(ctx context.Context, key string) error
}

// NewFromEnv picks the provider named by OSS_PROVIDER (aliyun | s3).
func NewFromEnv(prefix string) (ObjectStore, error) {
	switch strings.ToLower(configs.GetEnv("OSS_PROVIDER", "aliyun")) {
	case "s3":
		return NewS3StoreFromEnv(context.Background(), prefix)
	case "aliyun", "oss":
		return NewOSSServiceFromEnv(prefix)
	case "none", "":
		return nil, ErrNotConfigured
	default:
		return nil, fmt.Errorf("unknown OSS_PROVIDER %q", configs.GetEnv("OSS_PROVIDER"))
	}
}

/* =======================================================================
   In-memory store (tests / local demo)
======================================================================= */

type MemoryStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
	BaseURL string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Objects: map[string][]byte{},
		Types:   map[string]string{},
		BaseURL: "memory://objects",
	}
}

func (m *MemoryStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = data
	m.Types[key] = contentType
	return m.BaseURL + "/" + key, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	delete(m.Types, key)
	return nil
}

/* =======================================================================
   Key utils
======================================================================= */

// BuildObjectKey → <prefix>/<dir>/<slug>_<ts>_<rand><ext>
func BuildObjectKey(prefix, dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	ts := time.Now().Format("20060102_150405")

	parts := make([]string, 0, 3)
	for _, p := range []string{prefix, dir} {
		if p = strings.Trim(strings.TrimSpace(p), "/"); p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, fmt.Sprintf("%s_%s_%s%s", slugify(base), ts, randHex(3), ext))
	return strings.Join(parts, "/")
}

func ContentTypeFor(filename, fallback string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	if fallback != "" {
		return fallback
	}
	return "application/octet-stream"
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer(" ", "-", "_", "-")
	s = r.Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func joinKey(prefix, key string) string {
	if prefix = strings.Trim(prefix, "/"); prefix == "" {
		return key
	}
	return prefix + "/" + strings.TrimLeft(key, "/")
}

func publicURL(base, fallback, key string) string {
	if base = strings.TrimSpace(base); base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	return strings.TrimRight(fallback, "/") + "/" + key
}

func init() {
	_ = mime.AddExtensionType(".webp", "image/webp")
	_ = mime.AddExtensionType(".avif", "image/avif")
	_ = mime.AddExtensionType(".svg", "image/svg+xml")
}
