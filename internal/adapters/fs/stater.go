package fs

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports"
	"go.trai.ch/zerr"
)

// Stater implements ports.FileStater using os.Stat.
type Stater struct {
	walker  *Walker
	ignores []string
}

// NewStater creates a new Stater. Directories are summarized by walker.
func NewStater(walker *Walker, ignores ...string) *Stater {
	return &Stater{walker: walker, ignores: ignores}
}

var _ ports.FileStater = (*Stater)(nil)

// ModTime returns the modification time of path. For a directory it is the
// newest modification time among the directory and the files beneath it.
func (s *Stater) ModTime(path string) (time.Time, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, zerr.With(domain.Because(domain.ErrPathStatFailed, err), "path", path)
	}
	if !info.IsDir() {
		return info.ModTime(), true, nil
	}

	newest := info.ModTime()
	for file := range s.walker.WalkFiles(path, s.ignores) {
		fi, err := os.Stat(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return time.Time{}, false, zerr.With(domain.Because(domain.ErrPathStatFailed, err), "path", file)
		}
		if fi.ModTime().After(newest) {
			newest = fi.ModTime()
		}
	}
	return newest, true, nil
}
