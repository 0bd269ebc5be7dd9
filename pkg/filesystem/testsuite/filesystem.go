package testsuite

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/bornholm/sidenav/pkg/filesystem"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

// Fixture is the content tree every tested filesystem must expose.
var Fixture = map[string]string{
	"index.mdx":                           "---\ntitle: Home\n---\nWelcome",
	"introduction/what-is-liferay.md":     "---\ntitle: What is Liferay?\n---\nLiferay is a portal.",
	"osgi/modules.md":                     "---\ntitle: Modules\nsidebar:\n  order: 2\n---\n",
	"osgi/services.md":                    "---\ntitle: Services\nsidebar:\n  order: 1\n---\n",
	"themes/basics.md":                    "---\ntitle: Theme Basics\n---\n",
	"themes/advanced/index.md":            "---\ntitle: Advanced Themes\n---\n",
	"themes/advanced/contributors.mdx":    "---\ntitle: Theme Contributors\n---\n",
	"themes/advanced/drafts/upcoming.mdx": "---\ntitle: Upcoming\ndraft: true\n---\n",
}

type filesystemTestCase struct {
	Name string
	Run  func(ctx context.Context, fs webdav.FileSystem) error
}

var filesystemTestCases = []filesystemTestCase{
	{
		Name: "StatFile",
		Run:  StatFile,
	},
	{
		Name: "StatDirectory",
		Run:  StatDirectory,
	},
	{
		Name: "StatMissing",
		Run:  StatMissing,
	},
	{
		Name: "ReadFile",
		Run:  ReadFile,
	},
	{
		Name: "ReadDir",
		Run:  ReadDir,
	},
	{
		Name: "ReadDirPaged",
		Run:  ReadDirPaged,
	},
}

// TestFileSystem runs the read test cases against a filesystem created from
// the registry and seeded with Fixture.
func TestFileSystem(t *testing.T, fsType filesystem.Type, opts any) {
	t.Logf("Using filesystem '%s'", fsType)

	fs, err := filesystem.New(fsType, opts)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	Run(t, fs)
}

func Run(t *testing.T, fs webdav.FileSystem) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, tc := range filesystemTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := tc.Run(ctx, fs); err != nil {
				slog.ErrorContext(ctx, "test case failed", slog.String("case", tc.Name))
				t.Errorf("%+v", errors.WithStack(err))
			}
		})
	}
}

func StatFile(ctx context.Context, fs webdav.FileSystem) error {
	info, err := fs.Stat(ctx, "/introduction/what-is-liferay.md")
	if err != nil {
		return errors.WithStack(err)
	}

	if info.IsDir() {
		return errors.New("expected a file, got a directory")
	}

	if e, g := "what-is-liferay.md", info.Name(); e != g {
		return errors.Errorf("info.Name(): expected '%s', got '%s'", e, g)
	}

	if e, g := int64(len(Fixture["introduction/what-is-liferay.md"])), info.Size(); e != g {
		return errors.Errorf("info.Size(): expected '%d', got '%d'", e, g)
	}

	return nil
}

func StatDirectory(ctx context.Context, fs webdav.FileSystem) error {
	for _, name := range []string{"/", "/themes", "themes/advanced/"} {
		info, err := fs.Stat(ctx, name)
		if err != nil {
			return errors.Wrapf(err, "could not stat '%s'", name)
		}

		if !info.IsDir() {
			return errors.Errorf("expected '%s' to be a directory", name)
		}
	}

	return nil
}

func StatMissing(ctx context.Context, fs webdav.FileSystem) error {
	_, err := fs.Stat(ctx, "/missing/page.md")
	if !errors.Is(err, os.ErrNotExist) {
		return errors.Errorf("expected os.ErrNotExist, got '%v'", err)
	}

	return nil
}

func ReadFile(ctx context.Context, fs webdav.FileSystem) error {
	file, err := fs.OpenFile(ctx, "/osgi/modules.md", os.O_RDONLY, 0)
	if err != nil {
		return errors.WithStack(err)
	}

	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := Fixture["osgi/modules.md"], string(data); e != g {
		return errors.Errorf("content: expected '%s', got '%s'", e, g)
	}

	return nil
}

func ReadDir(ctx context.Context, fs webdav.FileSystem) error {
	dir, err := fs.OpenFile(ctx, "/themes", os.O_RDONLY, 0)
	if err != nil {
		return errors.WithStack(err)
	}

	defer dir.Close()

	infos, err := dir.Readdir(-1)
	if err != nil {
		return errors.WithStack(err)
	}

	names := make([]string, 0, len(infos))
	for _, i := range infos {
		names = append(names, i.Name())
	}

	slices.Sort(names)

	if e, g := []string{"advanced", "basics.md"}, names; !slices.Equal(e, g) {
		return errors.Errorf("names: expected '%v', got '%v'", e, g)
	}

	for _, i := range infos {
		if i.Name() == "advanced" && !i.IsDir() {
			return errors.New("expected 'advanced' to be a directory")
		}
	}

	return nil
}

func ReadDirPaged(ctx context.Context, fs webdav.FileSystem) error {
	dir, err := fs.OpenFile(ctx, "/osgi", os.O_RDONLY, 0)
	if err != nil {
		return errors.WithStack(err)
	}

	defer dir.Close()

	total := 0
	for {
		infos, err := dir.Readdir(1)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return errors.WithStack(err)
		}

		total += len(infos)

		if total > 2 {
			return errors.Errorf("expected at most 2 entries, got %d", total)
		}
	}

	if e, g := 2, total; e != g {
		return errors.Errorf("total: expected '%d', got '%d'", e, g)
	}

	return nil
}
