package objstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestNewUnsupportedBackend(t *testing.T) {
	_, err := New("carrier-pigeon", NewSettings())
	if !errors.Is(err, ErrUnsupportedBackend) {
		t.Fatalf("expected ErrUnsupportedBackend, got %v", err)
	}
}

func TestNewLocalMissingPath(t *testing.T) {
	_, err := New("local", NewSettings())
	if !errors.Is(err, ErrMissingConfig) {
		t.Fatalf("expected ErrMissingConfig, got %v", err)
	}

	_, err = New("local", NewSettings("path", ""))
	if !errors.Is(err, ErrMissingConfig) {
		t.Fatalf("expected ErrMissingConfig for empty path, got %v", err)
	}
}

func TestNewLocalPathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(file, []byte("x"), 0640); err != nil {
		t.Fatal(err)
	}

	_, err := New("local", NewSettings("path", file))
	if !errors.Is(err, ErrBackendInit) {
		t.Fatalf("expected ErrBackendInit, got %v", err)
	}
}

func TestNewLocalBadCompressionLevel(t *testing.T) {
	settings := NewSettings(
		"path", t.TempDir(),
		"compression", "true",
		"compressionLevel", "11",
	)
	_, err := New("local", settings)
	if !errors.Is(err, ErrBackendInit) {
		t.Fatalf("expected ErrBackendInit, got %v", err)
	}
}

type nullBackend struct{}

func (nullBackend) Put(context.Context, string, io.Reader) error       { return nil }
func (nullBackend) Get(context.Context, string) (io.ReadCloser, error) { return nil, ErrNotFound }
func (nullBackend) Delete(context.Context, string) error               { return ErrNotFound }

func TestRegisterCustomBackend(t *testing.T) {
	Register("null", func(Settings) (Backend, error) {
		return nullBackend{}, nil
	})

	b, err := New("null", NewSettings())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := b.(nullBackend); !ok {
		t.Fatalf("expected nullBackend, got %T", b)
	}
}
