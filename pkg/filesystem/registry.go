// Package filesystem provides the registry of file systems holding the
// documentation content pages.
package filesystem

import (
	"slices"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

var (
	ErrNotSupported  = errors.New("not supported")
	ErrNotRegistered = errors.New("filesystem type not registered")
)

type Type string

type Factory func(options any) (webdav.FileSystem, error)

var (
	registryMutex sync.RWMutex
	registry      = map[Type]Factory{}
)

func Register(fsType Type, factory Factory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	registry[fsType] = factory
}

func Registered() []Type {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	types := make([]Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}

	slices.Sort(types)

	return types
}

func New(fsType Type, options any) (webdav.FileSystem, error) {
	registryMutex.RLock()
	factory, exists := registry[fsType]
	registryMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(ErrNotRegistered, "unknown filesystem type '%s'", fsType)
	}

	fs, err := factory(options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return fs, nil
}
