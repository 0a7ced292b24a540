package tokenstore

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// ErrSealedToken is returned when a sealed token file cannot be opened with
// the configured secret.
var ErrSealedToken = errors.New("tokenstore: token file cannot be decrypted")

// File stores the token in a single file with 0600 permissions. With a
// secret the content is sealed with nacl/secretbox under a key derived from
// the secret.
type File struct {
	path string
	key  *[32]byte
	mu   sync.Mutex
}

// NewFile returns a file store at path. An empty path resolves to
// <user config dir>/mobictl/token.
func NewFile(path, secret string) (*File, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("tokenstore: resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "mobictl", "token")
	}
	f := &File{path: path}
	if secret != "" {
		key := blake2b.Sum256([]byte(secret))
		f.key = &key
	}
	return f, nil
}

// Path returns the file the token is written to.
func (f *File) Path() string { return f.path }

func (f *File) Load(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: read %s: %w", f.path, err)
	}
	if len(raw) == 0 {
		return "", nil
	}
	if f.key == nil {
		return strings.TrimSpace(string(raw)), nil
	}
	return f.open(raw)
}

func (f *File) Save(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	content := []byte(token)
	if f.key != nil {
		sealed, err := f.seal(content)
		if err != nil {
			return err
		}
		content = sealed
	}
	return f.write(content)
}

func (f *File) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore: remove %s: %w", f.path, err)
	}
	return nil
}

// Ping checks that the parent directory can be created.
func (f *File) Ping(context.Context) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: %w", err)
	}
	return nil
}

func (f *File) Close(context.Context) error { return nil }

func (f *File) write(content []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("tokenstore: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("tokenstore: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tokenstore: write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tokenstore: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tokenstore: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("tokenstore: rename: %w", err)
	}
	return nil
}

func (f *File) seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("tokenstore: nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, f.key), nil
}

func (f *File) open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrSealedToken
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, f.key)
	if !ok {
		return "", ErrSealedToken
	}
	return string(plain), nil
}
