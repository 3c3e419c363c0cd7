// Package store persists the single game session as a zstd-compressed
// snapshot file so a restarted server resumes where it left off.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	"github.com/freeeve/greedychess/internal/game"
)

// SnapshotStore reads and writes one snapshot file.
type SnapshotStore struct {
	mu      sync.Mutex
	path    string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	log     zerolog.Logger

	saves uint64
}

// NewSnapshotStore prepares a store at path, creating its directory.
func NewSnapshotStore(path string, log zerolog.Logger) (*SnapshotStore, error) {
	if path == "" {
		return nil, errors.New("snapshot path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &SnapshotStore{
		path:    path,
		encoder: encoder,
		decoder: decoder,
		log:     log,
	}, nil
}

// Path returns the snapshot file path.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Save writes st atomically: the snapshot goes to a temp file which then
// replaces the previous one.
func (s *SnapshotStore) Save(st game.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, body := EncodeSnapshot(st)
	data := make([]byte, 0, len(header)+len(body))
	data = append(data, header...)
	data = s.encoder.EncodeAll(body, data)

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write snapshot %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename snapshot %s: %w", s.path, err)
	}

	s.saves++
	s.log.Debug().
		Str("path", s.path).
		Int("body_bytes", len(body)).
		Int("file_bytes", len(data)).
		Uint64("saves", s.saves).
		Msg("snapshot saved")
	return nil
}

// Load reads the snapshot. It returns ErrNotFound if none exists.
func (s *SnapshotStore) Load() (game.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return game.State{}, ErrNotFound
		}
		return game.State{}, fmt.Errorf("read snapshot: %w", err)
	}
	if len(data) < SnapshotHeaderSize {
		return game.State{}, fmt.Errorf("%w: file too short", ErrCorrupt)
	}

	body, err := s.decoder.DecodeAll(data[SnapshotHeaderSize:], nil)
	if err != nil {
		return game.State{}, fmt.Errorf("%w: decompress: %v", ErrCorrupt, err)
	}
	st, err := DecodeSnapshot(data[:SnapshotHeaderSize], body)
	if err != nil {
		return game.State{}, err
	}

	s.log.Debug().Str("path", s.path).Msg("snapshot loaded")
	return st, nil
}

// Close releases the compression resources.
func (s *SnapshotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.encoder != nil {
		s.encoder.Close()
		s.encoder = nil
	}
	if s.decoder != nil {
		s.decoder.Close()
		s.decoder = nil
	}
	return nil
}
