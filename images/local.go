package images

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// URLPrefix is the path under which LocalBackend files are served.
const URLPrefix = "/uploads"

// LocalBackend writes images below Dir; they are served at
// BaseURL + URLPrefix + "/" + key.
type LocalBackend struct {
	Dir     string
	BaseURL string
}

func NewLocalBackend(dir, baseURL string) *LocalBackend {
	return &LocalBackend{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (b *LocalBackend) Put(ctx context.Context, key string, body []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(b.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return b.BaseURL + URLPrefix + "/" + key, nil
}
