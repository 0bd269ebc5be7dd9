package setup

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/bornholm/sidenav/internal/config"
	"github.com/bornholm/sidenav/pkg/starlight"
	"github.com/pkg/errors"
)

// WriteOutputFromConfig writes the generated site configuration to the
// configured output and returns its path ("-" for stdout).
func WriteOutputFromConfig(ctx context.Context, conf *config.Config, starlightConf *starlight.Config, stdout io.Writer) (string, error) {
	format, err := starlight.ParseFormat(string(conf.Output.Format))
	if err != nil {
		return "", errors.WithStack(err)
	}

	data, err := starlight.WriteBytes(starlightConf, format)
	if err != nil {
		return "", errors.WithStack(err)
	}

	path := string(conf.Output.Path)

	if path == "" || path == "-" {
		if _, err := stdout.Write(data); err != nil {
			return "", errors.WithStack(err)
		}

		return "-", nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.WithStack(err)
	}

	// Written beside the target then renamed, readers never see a partial file
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", errors.WithStack(err)
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", errors.WithStack(err)
	}

	if err := tmp.Close(); err != nil {
		return "", errors.WithStack(err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", errors.WithStack(err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", errors.WithStack(err)
	}

	return path, nil
}
