package testsuite

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SeedDir writes Fixture into the given local directory.
func SeedDir(dir string) error {
	for name, content := range Fixture {
		path := filepath.Join(dir, filepath.FromSlash(name))

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return errors.WithStack(err)
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}
