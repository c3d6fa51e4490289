package ports

import "time"

// FileStater reports filesystem metadata used for staleness checks.
//
//go:generate go run go.uber.org/mock/mockgen -source=file_stater.go -destination=mocks/mock_file_stater.go -package=mocks
type FileStater interface {
	// ModTime returns the modification time of path. exists is false, with a
	// nil error, when the path does not exist.
	ModTime(path string) (modTime time.Time, exists bool, err error)
}
