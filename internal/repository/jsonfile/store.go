package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"relaybot/internal/domain"
)

const (
	usersFile  = "users.json"
	groupsFile = "groups.json"
	statsFile  = "stats.json"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Store keeps users, groups and broadcast stats as three JSON documents in one
// directory. A missing document reads as empty. Every read-modify-write holds
// mu, so writers within the process never lose updates to each other.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates the data directory if needed
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// EnsureUser implements repository.UserRepository
func (s *Store) EnsureUser(userID int64) (bool, error) {
	return s.appendID(usersFile, userID)
}

// ListUsers implements repository.UserRepository
func (s *Store) ListUsers() ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readIDs(usersFile)
}

// AddGroup implements repository.GroupRepository
func (s *Store) AddGroup(chatID int64) (bool, error) {
	return s.appendID(groupsFile, chatID)
}

// ListGroups implements repository.GroupRepository
func (s *Store) ListGroups() ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readIDs(groupsFile)
}

// GetStats implements repository.StatsRepository
func (s *Store) GetStats() (domain.BroadcastStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats domain.BroadcastStats
	if _, err := s.readJSON(statsFile, &stats); err != nil {
		return domain.BroadcastStats{}, err
	}
	return stats, nil
}

// AddStats implements repository.StatsRepository
func (s *Store) AddStats(delta domain.BroadcastStats) (domain.BroadcastStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats domain.BroadcastStats
	if _, err := s.readJSON(statsFile, &stats); err != nil {
		return domain.BroadcastStats{}, err
	}
	stats = stats.Add(delta)
	if err := s.writeJSON(statsFile, stats); err != nil {
		return domain.BroadcastStats{}, err
	}
	return stats, nil
}

func (s *Store) appendID(name string, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.readIDs(name)
	if err != nil {
		return false, err
	}
	if slices.Contains(ids, id) {
		return false, nil
	}
	ids = append(ids, id)
	if err := s.writeJSON(name, ids); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) readIDs(name string) ([]int64, error) {
	ids := []int64{}
	if _, err := s.readJSON(name, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// readJSON decodes the document into v; exists is false when the file is absent
func (s *Store) readJSON(name string, v any) (bool, error) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// writeJSON replaces the document through a temp file and rename
func (s *Store) writeJSON(name string, v any) error {
	path := filepath.Join(s.dir, name)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp for %s: %w", path, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp for %s: %w", path, err)
	}
	return nil
}
