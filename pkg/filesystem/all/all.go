// Package all registers every content filesystem type.
package all

import (
	_ "github.com/bornholm/sidenav/pkg/filesystem/cor"
	_ "github.com/bornholm/sidenav/pkg/filesystem/local"
	_ "github.com/bornholm/sidenav/pkg/filesystem/s3"
)
