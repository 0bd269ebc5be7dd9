package s3

import (
	"log/slog"
	"net/url"

	"github.com/bornholm/sidenav/pkg/filesystem"
	"github.com/bornholm/sidenav/pkg/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

const Type filesystem.Type = "s3"

func init() {
	filesystem.Register(Type, CreateFileSystemFromOptions)
}

type Options struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	User     string `mapstructure:"user" yaml:"user"`
	Secret   string `mapstructure:"secret" yaml:"secret"`
	Token    string `mapstructure:"token" yaml:"token"`
	Region   string `mapstructure:"region" yaml:"region"`
	Bucket   string `mapstructure:"bucket" yaml:"bucket"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
	Secure   bool   `mapstructure:"secure" yaml:"secure"`
}

func CreateFileSystemFromOptions(options any) (webdav.FileSystem, error) {
	opts := Options{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' filesystem options decoder", Type)
	}

	if err := decoder.Decode(options); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' filesystem options", Type)
	}

	if opts.Bucket == "" {
		return nil, errors.Errorf("'%s' filesystem option 'bucket' must not be empty", Type)
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.User, opts.Secret, opts.Token),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' filesystem client", Type)
	}

	slog.Debug("s3 filesystem configured", log.ScrubbedURL("url", opts.URL()))

	return NewFileSystem(client, opts.Bucket, opts.Prefix), nil
}

// URL returns the location of the content as an URL, credentials included.
func (o Options) URL() string {
	u := &url.URL{
		Scheme: "http",
		Host:   o.Endpoint,
		Path:   "/" + o.Bucket,
	}

	if o.Secure {
		u.Scheme = "https"
	}

	if o.Prefix != "" {
		u = u.JoinPath(o.Prefix)
	}

	if o.User != "" {
		u.User = url.UserPassword(o.User, o.Secret)
	}

	return u.String()
}
