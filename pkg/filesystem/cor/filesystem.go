package cor

import (
	"context"
	"io"
	"os"
	"path"
	"time"

	"github.com/bornholm/sidenav/internal/syncx"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

type statEntry struct {
	info      os.FileInfo
	notExist  bool
	expiresAt time.Time
}

type listingEntry struct {
	entries   []os.FileInfo
	expiresAt time.Time
}

// FileSystem serves reads from a cache file system, copying files from the
// backend on first read. Stat results and directory listings of the backend
// are memoized in memory. Writes go to the backend and invalidate the cached
// state of the written path and its parent directory.
type FileSystem struct {
	cache   webdav.FileSystem
	backend webdav.FileSystem
	ttl     time.Duration

	stats    syncx.Map[string, statEntry]
	listings syncx.Map[string, listingEntry]
}

// Mkdir implements webdav.FileSystem.
func (f *FileSystem) Mkdir(ctx context.Context, name string, perm os.FileMode) error {
	name = clean(name)

	if err := f.backend.Mkdir(ctx, name, perm); err != nil {
		return err
	}

	f.invalidate(name)

	return nil
}

// OpenFile implements webdav.FileSystem.
func (f *FileSystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (webdav.File, error) {
	name = clean(name)

	if isWriting(flag) {
		file, err := f.backend.OpenFile(ctx, name, flag, perm)
		if err != nil {
			return nil, err
		}

		_ = f.cache.RemoveAll(ctx, name)

		return &File{file: file, fs: f, name: name, writing: true}, nil
	}

	info, err := f.Stat(ctx, name)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		file, err := f.backend.OpenFile(ctx, name, flag, perm)
		if err != nil {
			return nil, err
		}

		return &File{file: file, fs: f, name: name}, nil
	}

	if cached, err := f.cache.OpenFile(ctx, name, os.O_RDONLY, 0); err == nil {
		cachedInfo, err := cached.Stat()
		if err == nil && !cachedInfo.ModTime().Before(info.ModTime()) {
			return &File{file: cached, fs: f, name: name, fromCache: true}, nil
		}

		cached.Close()
	}

	backendFile, err := f.backend.OpenFile(ctx, name, flag, perm)
	if err != nil {
		return nil, err
	}

	if err := f.copyToCache(ctx, name, backendFile, info); err != nil {
		if _, err := backendFile.Seek(0, io.SeekStart); err != nil {
			backendFile.Close()
			return nil, errors.WithStack(err)
		}

		return &File{file: backendFile, fs: f, name: name}, nil
	}

	backendFile.Close()

	cached, err := f.cache.OpenFile(ctx, name, os.O_RDONLY, 0)
	if err != nil {
		return f.backend.OpenFile(ctx, name, flag, perm)
	}

	return &File{file: cached, fs: f, name: name, fromCache: true}, nil
}

// RemoveAll implements webdav.FileSystem.
func (f *FileSystem) RemoveAll(ctx context.Context, name string) error {
	name = clean(name)

	if err := f.backend.RemoveAll(ctx, name); err != nil {
		return err
	}

	_ = f.cache.RemoveAll(ctx, name)

	f.invalidateTree(name)

	return nil
}

// Rename implements webdav.FileSystem.
func (f *FileSystem) Rename(ctx context.Context, oldName string, newName string) error {
	oldName = clean(oldName)
	newName = clean(newName)

	if err := f.backend.Rename(ctx, oldName, newName); err != nil {
		return err
	}

	_ = f.cache.RemoveAll(ctx, oldName)
	_ = f.cache.RemoveAll(ctx, newName)

	f.invalidateTree(oldName)
	f.invalidateTree(newName)

	return nil
}

// Stat implements webdav.FileSystem.
func (f *FileSystem) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	name = clean(name)
	now := time.Now()

	if entry, exists := f.stats.Load(name); exists && now.Before(entry.expiresAt) {
		if entry.notExist {
			return nil, os.ErrNotExist
		}

		return entry.info, nil
	}

	info, err := f.backend.Stat(ctx, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.stats.Store(name, statEntry{notExist: true, expiresAt: now.Add(f.ttl)})
		}

		return nil, err
	}

	f.stats.Store(name, statEntry{info: info, expiresAt: now.Add(f.ttl)})

	return info, nil
}

// Flush drops every memoized stat result and directory listing.
func (f *FileSystem) Flush() {
	f.stats.Clear()
	f.listings.Clear()
}

func NewFileSystem(cache webdav.FileSystem, backend webdav.FileSystem, ttl time.Duration) *FileSystem {
	return &FileSystem{
		cache:   cache,
		backend: backend,
		ttl:     ttl,
	}
}

func (f *FileSystem) copyToCache(ctx context.Context, name string, backendFile webdav.File, info os.FileInfo) error {
	if dir := path.Dir(name); dir != "/" {
		if err := f.ensureDirectory(ctx, dir); err != nil {
			return errors.WithStack(err)
		}
	}

	cacheFile, err := f.cache.OpenFile(ctx, name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|0o600)
	if err != nil {
		return errors.WithStack(err)
	}

	defer cacheFile.Close()

	if _, err := io.Copy(cacheFile, backendFile); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (f *FileSystem) ensureDirectory(ctx context.Context, dir string) error {
	if _, err := f.cache.Stat(ctx, dir); err == nil {
		return nil
	}

	if parent := path.Dir(dir); parent != "/" && parent != dir {
		if err := f.ensureDirectory(ctx, parent); err != nil {
			return errors.WithStack(err)
		}
	}

	if err := f.cache.Mkdir(ctx, dir, 0o755); err != nil && !os.IsExist(err) {
		return errors.WithStack(err)
	}

	return nil
}

func (f *FileSystem) cachedListing(name string) ([]os.FileInfo, bool) {
	entry, exists := f.listings.Load(name)
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.entries, true
}

func (f *FileSystem) storeListing(name string, entries []os.FileInfo) {
	f.listings.Store(name, listingEntry{entries: entries, expiresAt: time.Now().Add(f.ttl)})
}

func (f *FileSystem) invalidate(name string) {
	f.stats.Delete(name)
	f.listings.Delete(name)
	f.listings.Delete(path.Dir(name))
}

func (f *FileSystem) invalidateTree(name string) {
	prefix := name + "/"

	f.stats.Range(func(key string, _ statEntry) bool {
		if key == name || len(key) > len(prefix) && key[:len(prefix)] == prefix {
			f.stats.Delete(key)
		}
		return true
	})

	f.listings.Range(func(key string, _ listingEntry) bool {
		if key == name || len(key) > len(prefix) && key[:len(prefix)] == prefix {
			f.listings.Delete(key)
		}
		return true
	})

	f.listings.Delete(path.Dir(name))
}

func isWriting(flag int) bool {
	return flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0
}

func clean(name string) string {
	return path.Clean("/" + name)
}

var _ webdav.FileSystem = &FileSystem{}
