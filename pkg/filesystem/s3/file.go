package s3

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
	dir     bool
}

func newFileInfo(obj minio.ObjectInfo) *fileInfo {
	return &fileInfo{
		name:    path.Base(obj.Key),
		size:    obj.Size,
		modTime: obj.LastModified,
	}
}

func (i *fileInfo) Name() string       { return i.name }
func (i *fileInfo) Size() int64        { return i.size }
func (i *fileInfo) ModTime() time.Time { return i.modTime }
func (i *fileInfo) IsDir() bool        { return i.dir }
func (i *fileInfo) Sys() any           { return nil }

func (i *fileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o555
	}

	return 0o444
}

var _ fs.FileInfo = &fileInfo{}

type objectFile struct {
	obj  *minio.Object
	info fs.FileInfo
}

// Close implements webdav.File.
func (f *objectFile) Close() error {
	return errors.WithStack(f.obj.Close())
}

// Read implements webdav.File.
func (f *objectFile) Read(p []byte) (int, error) {
	return f.obj.Read(p)
}

// Readdir implements webdav.File.
func (f *objectFile) Readdir(count int) ([]fs.FileInfo, error) {
	return nil, errors.Errorf("'%s' is not a directory", f.info.Name())
}

// Seek implements webdav.File.
func (f *objectFile) Seek(offset int64, whence int) (int64, error) {
	return f.obj.Seek(offset, whence)
}

// Stat implements webdav.File.
func (f *objectFile) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

// Write implements webdav.File.
func (f *objectFile) Write(p []byte) (int, error) {
	return 0, errors.WithStack(os.ErrPermission)
}

var _ webdav.File = &objectFile{}

type dirFile struct {
	ctx  context.Context
	fs   *FileSystem
	key  string
	info fs.FileInfo

	entries []fs.FileInfo
	listed  bool
}

// Close implements webdav.File.
func (f *dirFile) Close() error {
	return nil
}

// Read implements webdav.File.
func (f *dirFile) Read(p []byte) (int, error) {
	return 0, errors.Errorf("'%s' is a directory", f.info.Name())
}

// Readdir implements webdav.File.
func (f *dirFile) Readdir(count int) ([]fs.FileInfo, error) {
	if !f.listed {
		entries, err := f.fs.readdir(f.ctx, f.key)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		f.entries = entries
		f.listed = true
	}

	if count <= 0 {
		entries := f.entries
		f.entries = nil
		return entries, nil
	}

	if len(f.entries) == 0 {
		return nil, io.EOF
	}

	if count > len(f.entries) {
		count = len(f.entries)
	}

	entries := f.entries[:count]
	f.entries = f.entries[count:]

	return entries, nil
}

// Seek implements webdav.File.
func (f *dirFile) Seek(offset int64, whence int) (int64, error) {
	return 0, nil
}

// Stat implements webdav.File.
func (f *dirFile) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

// Write implements webdav.File.
func (f *dirFile) Write(p []byte) (int, error) {
	return 0, errors.WithStack(os.ErrPermission)
}

var _ webdav.File = &dirFile{}
