package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const fileMode = 0o600

// File persists tokens in a JSON file keyed by API origin, so one file can
// hold credentials for several shop API deployments.
type File struct {
	mu     sync.Mutex
	path   string
	origin string
}

// NewFile returns the store for apiBaseURL inside the file at path.
func NewFile(path, apiBaseURL string) (*File, error) {
	origin, err := Origin(apiBaseURL)
	if err != nil {
		return nil, err
	}
	return &File{path: path, origin: origin}, nil
}

// DefaultPath is $XDG_CONFIG_HOME/shopctl/tokens.json or its platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "shopctl", "tokens.json"), nil
}

// Origin reduces a base URL to scheme://host[:port].
func Origin(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("parse api url: %q is not absolute", rawURL)
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host), nil
}

func (f *File) Get(context.Context) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tokens, err := f.load()
	if err != nil {
		return "", false, err
	}
	token := tokens[f.origin]
	return token, token != "", nil
}

func (f *File) Set(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tokens, err := f.load()
	if err != nil {
		return err
	}
	tokens[f.origin] = token
	return f.save(tokens)
}

func (f *File) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tokens, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := tokens[f.origin]; !ok {
		return nil
	}
	delete(tokens, f.origin)
	return f.save(tokens)
}

func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	tokens := map[string]string{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return tokens, nil
	}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("decode token file: %w", err)
	}
	return tokens, nil
}

// save writes through a temp file and rename so a crash never leaves a
// truncated file behind.
func (f *File) save(tokens map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".tokens-*.json")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp token file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp token file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}
