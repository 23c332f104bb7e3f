// Package userfile stores accounts in a flat text file, one
// `username;password;ROLE` record per line.
package userfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s2k/videogame-store/internal/core/domain"
	"github.com/s2k/videogame-store/internal/core/ports"
)

const separator = ";"

type Store struct {
	path   string
	logger zerolog.Logger
}

var _ ports.AccountStore = (*Store)(nil)

func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{path: path, logger: logger.With().Str("users_file", path).Logger()}
}

func (s *Store) Path() string { return s.path }

// Load reads every well-formed record. A missing file is a normal first run.
func (s *Store) Load(ctx context.Context) ([]ports.AccountRecord, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info().Msg("users file not found, starting empty")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open users file: %w", err)
	}
	defer f.Close()

	var records []ports.AccountRecord
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		parts := strings.Split(text, separator)
		if len(parts) < 3 {
			s.logger.Warn().Int("line", line).Msg("skipping invalid line in users file")
			continue
		}
		records = append(records, ports.AccountRecord{
			Line:     line,
			Username: strings.TrimSpace(parts[0]),
			Password: strings.TrimSpace(parts[1]),
			Role:     strings.TrimSpace(parts[2]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	s.logger.Debug().Int("records", len(records)).Msg("users file loaded")
	return records, nil
}

// Save overwrites the file with accounts in order.
func (s *Store) Save(ctx context.Context, accounts []*domain.Account) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create users dir: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create users file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, a := range accounts {
		fmt.Fprintf(w, "%s%s%s%s%s\n", a.Username, separator, a.Password, separator, a.Role)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write users file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close users file: %w", err)
	}

	s.logger.Info().Int("accounts", len(accounts)).Msg("users saved")
	return nil
}

// Writable reports whether the directory holding the file accepts new files.
func (s *Store) Writable() error {
	dir := filepath.Dir(s.path)
	f, err := os.CreateTemp(dir, ".users-probe-*")
	if err != nil {
		return fmt.Errorf("users dir %s not writable: %w", dir, err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
