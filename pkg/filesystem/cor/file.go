package cor

import (
	"io"
	"io/fs"

	"golang.org/x/net/webdav"
)

type File struct {
	file webdav.File
	fs   *FileSystem
	name string

	fromCache bool
	writing   bool

	// listing holds the directory entries not yet returned by Readdir
	listing []fs.FileInfo
	listed  bool
}

// Close implements webdav.File.
func (f *File) Close() error {
	err := f.file.Close()

	if f.writing {
		f.fs.invalidate(f.name)
	}

	return err
}

// Read implements webdav.File.
func (f *File) Read(p []byte) (n int, err error) {
	return f.file.Read(p)
}

// Readdir implements webdav.File.
func (f *File) Readdir(count int) ([]fs.FileInfo, error) {
	if !f.listed {
		entries, ok := f.fs.cachedListing(f.name)
		if !ok {
			var err error

			entries, err = f.file.Readdir(-1)
			if err != nil {
				return nil, err
			}

			f.fs.storeListing(f.name, entries)
		}

		f.listing = entries
		f.listed = true
	}

	if count <= 0 {
		entries := f.listing
		f.listing = nil
		return entries, nil
	}

	if len(f.listing) == 0 {
		return nil, io.EOF
	}

	if count > len(f.listing) {
		count = len(f.listing)
	}

	entries := f.listing[:count]
	f.listing = f.listing[count:]

	return entries, nil
}

// Seek implements webdav.File.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

// Stat implements webdav.File.
func (f *File) Stat() (fs.FileInfo, error) {
	return f.file.Stat()
}

// Write implements webdav.File.
func (f *File) Write(p []byte) (n int, err error) {
	return f.file.Write(p)
}

var _ webdav.File = &File{}
