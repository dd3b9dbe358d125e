//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=steps
package steps

import "context"

type (
	// FileSource resolves globs and reads files for the index.
	FileSource interface {
		Glob(ctx context.Context, pattern string) ([]string, error)
		ReadFile(ctx context.Context, path string) ([]byte, error)
	}

	// Logger is compatible with *slog.Logger.
	Logger interface {
		Debug(msg string, args ...any)
		Info(msg string, args ...any)
		Warn(msg string, args ...any)
		Error(msg string, args ...any)
	}
)
