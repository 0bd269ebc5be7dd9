package local

import (
	"os"

	"github.com/bornholm/sidenav/pkg/filesystem"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

const Type filesystem.Type = "local"

func init() {
	filesystem.Register(Type, CreateFileSystemFromOptions)
}

type Options struct {
	Dir string `mapstructure:"dir"`
}

func CreateFileSystemFromOptions(options any) (webdav.FileSystem, error) {
	opts := Options{}

	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' filesystem options", Type)
	}

	if opts.Dir == "" {
		return nil, errors.Errorf("'%s' filesystem option 'dir' must not be empty", Type)
	}

	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not access content directory '%s'", opts.Dir)
	}

	if !info.IsDir() {
		return nil, errors.Errorf("content path '%s' is not a directory", opts.Dir)
	}

	return webdav.Dir(opts.Dir), nil
}
