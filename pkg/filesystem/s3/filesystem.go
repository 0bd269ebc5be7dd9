package s3

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

const separator = "/"

// FileSystem exposes the objects of a bucket as a read-only file tree.
// Directories are the key prefixes delimited by slashes.
type FileSystem struct {
	client *minio.Client
	bucket string
	prefix string
}

// Mkdir implements webdav.FileSystem.
func (f *FileSystem) Mkdir(ctx context.Context, name string, perm os.FileMode) error {
	return errors.WithStack(os.ErrPermission)
}

// OpenFile implements webdav.FileSystem.
func (f *FileSystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (webdav.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, errors.WithStack(os.ErrPermission)
	}

	info, err := f.Stat(ctx, name)
	if err != nil {
		return nil, err
	}

	key := f.key(name)

	if info.IsDir() {
		return &dirFile{ctx: ctx, fs: f, key: key, info: info}, nil
	}

	obj, err := f.client.GetObject(ctx, f.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &objectFile{obj: obj, info: info}, nil
}

// RemoveAll implements webdav.FileSystem.
func (f *FileSystem) RemoveAll(ctx context.Context, name string) error {
	return errors.WithStack(os.ErrPermission)
}

// Rename implements webdav.FileSystem.
func (f *FileSystem) Rename(ctx context.Context, oldName string, newName string) error {
	return errors.WithStack(os.ErrPermission)
}

// Stat implements webdav.FileSystem.
func (f *FileSystem) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	key := f.key(name)

	if key == "" {
		return &fileInfo{name: separator, dir: true}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objInfo, err := f.client.StatObject(ctx, f.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return newFileInfo(objInfo), nil
	}

	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return nil, errors.WithStack(err)
	}

	objects := f.client.ListObjects(ctx, f.bucket, minio.ListObjectsOptions{
		Prefix:  key + separator,
		MaxKeys: 1,
	})

	for obj := range objects {
		if obj.Err != nil {
			return nil, errors.WithStack(obj.Err)
		}

		return &fileInfo{name: path.Base(key), dir: true}, nil
	}

	return nil, os.ErrNotExist
}

func (f *FileSystem) readdir(ctx context.Context, key string) ([]os.FileInfo, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prefix := key
	if prefix != "" {
		prefix += separator
	}

	objects := f.client.ListObjects(ctx, f.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	})

	infos := make([]os.FileInfo, 0)
	for obj := range objects {
		if obj.Err != nil {
			return nil, errors.WithStack(obj.Err)
		}

		name := strings.TrimPrefix(obj.Key, prefix)
		if name == "" {
			continue
		}

		if strings.HasSuffix(name, separator) {
			infos = append(infos, &fileInfo{name: strings.TrimSuffix(name, separator), dir: true})
			continue
		}

		info := newFileInfo(obj)
		info.name = name
		infos = append(infos, info)
	}

	return infos, nil
}

func (f *FileSystem) key(name string) string {
	name = strings.Trim(path.Clean(separator+name), separator)
	return strings.Trim(path.Join(f.prefix, name), separator)
}

func NewFileSystem(client *minio.Client, bucket string, prefix string) *FileSystem {
	return &FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, separator),
	}
}

var _ webdav.FileSystem = &FileSystem{}
