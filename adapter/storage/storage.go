// Package storage contains the default [domain.Storage] implementation, which
// keeps exported documents in files on the local filesystem.
package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// Default permissions of the created files and directories.
const (
	DefaultDirMode  os.FileMode = 0o755
	DefaultFileMode os.FileMode = 0o644
)

// syncFile is replaced on platforms where directories cannot be synced.
var syncFile = func(f *os.File, _ bool) error {
	return f.Sync()
}

// Storage implements [domain.Storage].
type Storage struct {
	os       osOps
	dirMode  os.FileMode
	fileMode os.FileMode
}

// NewStorage returns a new implementation of [domain.Storage].
func NewStorage(options ...Option) domain.Storage {
	s := &Storage{
		os:       &osImpl{},
		dirMode:  DefaultDirMode,
		fileMode: DefaultFileMode,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Exists implements [domain.Storage].
func (s *Storage) Exists(filename string) (bool, error) {
	_, err := s.os.Stat(filename)
	if err != nil {
		if s.os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReadFileStream implements [domain.Storage].
func (s *Storage) ReadFileStream(filename string) (io.ReadCloser, error) {
	return s.os.OpenFile(filename, os.O_RDONLY, s.fileMode)
}

// CrashSafeWriteFile implements [domain.Storage]. The content is written to a
// temporary file next to filename, synced and then renamed over filename.
func (s *Storage) CrashSafeWriteFile(filename string, write func(io.Writer) error) error {
	tempFilename := filename + "~"
	dir := filepath.Dir(filename)

	if err := s.os.MkdirAll(dir, s.dirMode); err != nil {
		return err
	}

	if err := s.writeTemp(tempFilename, write); err != nil {
		return errors.Join(err, s.removeTemp(tempFilename))
	}

	if err := s.os.Rename(tempFilename, filename); err != nil {
		return errors.Join(err, s.removeTemp(tempFilename))
	}

	return s.flushToStorage(dir, true)
}

func (s *Storage) writeTemp(filename string, write func(io.Writer) error) error {
	f, err := s.os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, s.fileMode)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	if err := syncFile(f, false); err != nil {
		f.Close()
		return domain.ErrFlushToStorage{Name: filename, Err: err}
	}

	if err := f.Close(); err != nil {
		return domain.ErrFlushToStorage{Name: filename, Err: err}
	}
	return nil
}

func (s *Storage) removeTemp(filename string) error {
	if err := s.os.Remove(filename); err != nil && !s.os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Storage) flushToStorage(filename string, isDir bool) error {
	mode := s.fileMode
	if isDir {
		mode = s.dirMode
	}

	f, err := s.os.OpenFile(filename, os.O_RDONLY, mode)
	if err != nil {
		return domain.ErrFlushToStorage{Name: filename, Err: err}
	}

	if err := syncFile(f, isDir); err != nil {
		f.Close()
		return domain.ErrFlushToStorage{Name: filename, Err: err}
	}

	if err := f.Close(); err != nil {
		return domain.ErrFlushToStorage{Name: filename, Err: err}
	}
	return nil
}
