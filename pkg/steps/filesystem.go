package steps

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// FileSystem is the FileSource of the local disk. Relative globs are resolved
// against Root, or the working directory when Root is empty.
type FileSystem struct {
	Root string
}

func NewFileSystem(root string) *FileSystem {
	return &FileSystem{Root: root}
}

func (f *FileSystem) Glob(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(pattern) && f.Root != "" {
		pattern = filepath.Join(f.Root, pattern)
	}

	return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
}

func (f *FileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}
