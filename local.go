package objstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aweris/objstore/internal/compression"
)

// Local is a backend that stores objects as files under a root directory.
//
// Keys are slash-separated paths; each segment becomes a directory
// component under the root. The file content is the object payload and the
// sole source of truth: no index or metadata sidecar is kept. Writes go to
// a temp file in the destination directory and are renamed into place, so a
// reader racing a writer sees the old payload or the new one, never a
// partial write.
//
// Settings:
//   - path: root directory (required). Created lazily on first write.
//   - compression: "true" to zstd-frame stored payloads (optional).
//   - compressionLevel: 1 (fastest), 2 (default) or 3 (better) (optional).
//   - cacheSize: max entries for an in-memory read cache, 0 disables it
//     (optional, default 0).
type Local struct {
	root  string
	codec *compression.Codec
	cache *readCache
}

func newLocal(settings Settings) (Backend, error) {
	root, ok := settings.Get("path")
	if !ok || root == "" {
		return nil, fmt.Errorf("%w: path", ErrMissingConfig)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve path %q: %v", ErrBackendInit, root, err)
	}

	if info, err := os.Stat(abs); err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %q exists and is not a directory", ErrBackendInit, abs)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: stat %q: %v", ErrBackendInit, abs, err)
	}

	level := compression.LevelDisabled
	if settings.Value("compression") == "true" {
		level = compression.LevelDefault
		if v, ok := settings.Get("compressionLevel"); ok {
			level, err = strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%w: compressionLevel %q", ErrBackendInit, v)
			}
		}
	}
	codec, err := compression.New(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendInit, err)
	}

	var cache *readCache
	if v, ok := settings.Get("cacheSize"); ok {
		size, err := strconv.Atoi(v)
		if err != nil || size < 0 {
			return nil, fmt.Errorf("%w: cacheSize %q", ErrBackendInit, v)
		}
		if size > 0 {
			cache = newReadCache(size)
		}
	}

	return &Local{root: abs, codec: codec, cache: cache}, nil
}

// Put stores data as the complete payload for key, replacing any previous
// payload atomically.
func (l *Local) Put(ctx context.Context, key string, data io.Reader) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	// The codec and the cache both need the full payload; without either,
	// stream straight to the temp file.
	if l.codec.Enabled() || l.cache != nil {
		payload, err := io.ReadAll(data)
		if err != nil {
			return err
		}
		if err := l.writeFile(dir, path, bytes.NewReader(l.codec.Compress(payload))); err != nil {
			return err
		}
		if l.cache != nil {
			l.cache.add(key, payload)
		}
		return nil
	}

	return l.writeFile(dir, path, data)
}

// writeFile writes data to a temp file in dir and renames it over path.
func (l *Local) writeFile(dir, path string, data io.Reader) error {
	tmp, err := os.CreateTemp(dir, ".objstore-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, err = io.Copy(tmp, data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmpName, 0640)
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// Get returns the payload stored for key, or ErrNotFound.
func (l *Local) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := l.resolve(key)
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if l.cache != nil {
		if payload, ok := l.cache.get(key); ok {
			return io.NopCloser(bytes.NewReader(payload)), nil
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	if !l.codec.Enabled() && l.cache == nil {
		file, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
			}
			return nil, err
		}
		return file, nil
	}

	stored, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, err
	}
	payload := l.codec.Decompress(stored)
	if l.cache != nil {
		l.cache.add(key, payload)
	}
	return io.NopCloser(bytes.NewReader(payload)), nil
}

// Delete removes the payload stored for key, or returns ErrNotFound.
// Now-empty parent directories are left in place.
func (l *Local) Delete(ctx context.Context, key string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return err
	}
	if l.cache != nil {
		l.cache.remove(key)
	}
	return nil
}

// Close releases the compression codec.
func (l *Local) Close() error {
	return l.codec.Close()
}

// resolve maps key to a filesystem path under the root, rejecting keys that
// would escape it.
func (l *Local) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if strings.IndexByte(key, 0) >= 0 {
		return "", fmt.Errorf("%w: key contains NUL byte", ErrInvalidKey)
	}
	if strings.HasPrefix(key, "/") || (len(key) >= 2 && key[1] == ':') {
		return "", fmt.Errorf("%w: key must be relative: %s", ErrInvalidKey, key)
	}

	path := filepath.Join(l.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(l.root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: key escapes storage root: %s", ErrInvalidKey, key)
	}
	return path, nil
}
