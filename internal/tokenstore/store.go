// Package tokenstore persists the auth token encrypted at rest. Key
// material lives in a kryptograf key store next to the token file; the
// token itself is sealed with a per-descriptor DEK minted from the root
// key.
package tokenstore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/kryptograf"
	"pkt.systems/kryptograf/keymgmt"
	"pkt.systems/pslog"
)

const (
	keyStoreFile   = "keys.bundle"
	tokenFile      = "token.enc"
	descriptorName = "parley:token"
)

// Store manages the encrypted token file under a state directory.
type Store struct {
	storePath string
	tokenPath string
	log       pslog.Logger
}

// NewStore initializes the token store under dir.
func NewStore(dir string) (*Store, error) {
	return NewStoreWithLogger(dir, nil)
}

// NewStoreWithLogger initializes the token store with logging.
func NewStoreWithLogger(dir string, logger pslog.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("state_dir", dir)
	}
	return &Store{
		storePath: filepath.Join(dir, keyStoreFile),
		tokenPath: filepath.Join(dir, tokenFile),
		log:       logger,
	}, nil
}

// Save seals the token to disk, replacing any previous one atomically.
func (s *Store) Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is required")
	}
	material, root, err := s.material()
	if err != nil {
		if s.log != nil {
			s.log.Warn("token save failed", "err", err)
		}
		return err
	}
	kg := kryptograf.New(root)
	tmp, err := os.CreateTemp(filepath.Dir(s.tokenPath), "token-*.enc")
	if err != nil {
		if s.log != nil {
			s.log.Warn("token save failed", "err", err)
		}
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}
	if err := tmp.Chmod(0o600); err != nil {
		cleanup()
		return err
	}
	writer, err := kg.EncryptWriter(tmp, material)
	if err != nil {
		cleanup()
		if s.log != nil {
			s.log.Warn("token save failed", "err", err)
		}
		return err
	}
	if _, err := io.Copy(writer, bytes.NewReader([]byte(token))); err != nil {
		_ = writer.Close()
		cleanup()
		return err
	}
	if err := writer.Close(); err != nil {
		cleanup()
		return err
	}
	_ = tmp.Close()
	if err := os.Rename(tmpPath, s.tokenPath); err != nil {
		_ = os.Remove(tmpPath)
		if s.log != nil {
			s.log.Warn("token save failed", "err", err)
		}
		return err
	}
	if s.log != nil {
		s.log.Debug("token save ok")
	}
	return nil
}

// Load reads the sealed token. A missing file is not an error.
func (s *Store) Load() (string, bool, error) {
	file, err := os.Open(s.tokenPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.log != nil {
				s.log.Debug("token load miss")
			}
			return "", false, nil
		}
		return "", false, err
	}
	defer func() { _ = file.Close() }()
	material, root, err := s.material()
	if err != nil {
		if s.log != nil {
			s.log.Warn("token load failed", "err", err)
		}
		return "", false, err
	}
	kg := kryptograf.New(root)
	reader, err := kg.DecryptReader(file, material)
	if err != nil {
		if s.log != nil {
			s.log.Warn("token load failed", "err", err)
		}
		return "", false, err
	}
	defer func() { _ = reader.Close() }()
	plain, err := io.ReadAll(reader)
	if err != nil {
		if s.log != nil {
			s.log.Warn("token load failed", "err", err)
		}
		return "", false, err
	}
	token := strings.TrimSpace(string(plain))
	if token == "" {
		return "", false, fmt.Errorf("token file is empty")
	}
	if s.log != nil {
		s.log.Debug("token load ok")
	}
	return token, true, nil
}

// Clear removes the sealed token, keeping the key material.
func (s *Store) Clear() error {
	if err := os.Remove(s.tokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if s.log != nil {
		s.log.Debug("token cleared")
	}
	return nil
}

func (s *Store) material() (keymgmt.Material, keymgmt.RootKey, error) {
	store, err := keymgmt.LoadProto(s.storePath)
	if err != nil {
		return keymgmt.Material{}, keymgmt.RootKey{}, err
	}
	root, err := store.EnsureRootKey()
	if err != nil {
		return keymgmt.Material{}, keymgmt.RootKey{}, err
	}
	material, err := store.EnsureDescriptor(descriptorName, root, []byte(descriptorName))
	if err != nil {
		return keymgmt.Material{}, keymgmt.RootKey{}, err
	}
	if err := store.Commit(); err != nil {
		return keymgmt.Material{}, keymgmt.RootKey{}, err
	}
	return material, root, nil
}
