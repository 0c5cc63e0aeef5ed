// Package file persists conversation flows as one JSON document per user.
package file

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

	"github.com/aretw0/carebot/pkg/domain"
)

// DefaultDir is used when NewStore is given an empty path.
var DefaultDir = filepath.Join(".carebot", "contexts")

type record struct {
	Context domain.FlowState `json:"context"`
}

// Store implements ports.ContextStore on the local filesystem.
type Store struct {
	BasePath string
	mu       sync.RWMutex
}

// NewStore creates a Store rooted at basePath.
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = DefaultDir
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("userID cannot be empty")
	}
	return filepath.Join(s.BasePath, url.PathEscape(userID)+".json"), nil
}

// Set writes the flow atomically via a temp file and rename.
func (s *Store) Set(ctx context.Context, userID string, flow domain.FlowState) error {
	p, err := s.path(userID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(record{Context: flow})
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure context directory: %w", err)
	}
	tmp, err := os.CreateTemp(s.BasePath, ".ctx-*")
	if err != nil {
		return fmt.Errorf("failed to write context file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write context file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write context file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write context file: %w", err)
	}
	return nil
}

// Get reads the stored flow.
func (s *Store) Get(ctx context.Context, userID string) (domain.FlowState, error) {
	p, err := s.path(userID)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	data, err := os.ReadFile(p)
	s.mu.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return "", domain.ErrContextNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read context file: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("failed to unmarshal context for %s: %w", userID, err)
	}
	flow, err := domain.ParseFlowState(string(rec.Context))
	if err != nil {
		return "", fmt.Errorf("corrupt context for %s: %w", userID, err)
	}
	return flow, nil
}

// Delete removes the file. Missing files are not an error.
func (s *Store) Delete(ctx context.Context, userID string) error {
	p, err := s.path(userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete context file: %w", err)
	}
	return nil
}

// List returns the ids of every user with a stored flow.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list contexts: %w", err)
	}

	users := []string{}
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".json")
		if entry.IsDir() || !ok {
			continue
		}
		if id, err := url.PathUnescape(name); err == nil {
			users = append(users, id)
		}
	}
	return users, nil
}

// Ping checks that the base directory can be created.
func (s *Store) Ping(ctx context.Context) error {
	return os.MkdirAll(s.BasePath, 0o755)
}
