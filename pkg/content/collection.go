package content

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/bornholm/sidenav/pkg/sidebar"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

var ErrPageNotFound = errors.New("page not found")

var DefaultExtensions = []string{".md", ".mdx", ".mdoc"}

type Options struct {
	Extensions []string
	Logger     *slog.Logger
}

type OptionFunc func(opts *Options)

func WithExtensions(extensions ...string) OptionFunc {
	return func(opts *Options) {
		opts.Extensions = extensions
	}
}

func WithLogger(logger *slog.Logger) OptionFunc {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// Collection indexes the pages of a content file system. The index is built
// on first use and kept until Reload is called.
type Collection struct {
	fs         webdav.FileSystem
	extensions []string
	logger     *slog.Logger

	mutex sync.Mutex
	pages map[string]*Page
}

func NewCollection(fs webdav.FileSystem, funcs ...OptionFunc) *Collection {
	opts := &Options{
		Extensions: DefaultExtensions,
		Logger:     slog.Default(),
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return &Collection{
		fs:         fs,
		extensions: opts.Extensions,
		logger:     opts.Logger,
	}
}

// FileSystem returns the file system holding the pages.
func (c *Collection) FileSystem() webdav.FileSystem {
	return c.fs
}

// Reload drops the page index.
func (c *Collection) Reload() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.pages = nil
}

func (c *Collection) Page(ctx context.Context, slug string) (*Page, error) {
	pages, err := c.index(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	page, exists := pages[slug]
	if !exists {
		return nil, errors.Wrapf(ErrPageNotFound, "no page with slug '%s'", slug)
	}

	return page, nil
}

// Pages returns every indexed page, ordered by slug.
func (c *Collection) Pages(ctx context.Context) ([]*Page, error) {
	pages, err := c.index(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	list := make([]*Page, 0, len(pages))
	for _, p := range pages {
		list = append(list, p)
	}

	slices.SortFunc(list, func(a, b *Page) int {
		return strings.Compare(a.Slug, b.Slug)
	})

	return list, nil
}

// Resolve implements sidebar.Resolver.
func (c *Collection) Resolve(ctx context.Context, slug string) (bool, error) {
	if _, err := c.Page(ctx, slug); err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return false, nil
		}

		return false, errors.WithStack(err)
	}

	return true, nil
}

// Title implements sidebar.Titler.
func (c *Collection) Title(ctx context.Context, slug string) (string, bool, error) {
	page, err := c.Page(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return "", false, nil
		}

		return "", false, errors.WithStack(err)
	}

	return page.Label(), true, nil
}

type generated struct {
	order int
	key   string
	node  *sidebar.Node
}

// Generate implements sidebar.Generator. Pages found directly in the
// directory become leaves, subdirectories become groups. Hidden and draft
// pages are skipped.
func (c *Collection) Generate(ctx context.Context, directory string) (sidebar.Sidebar, error) {
	pages, err := c.index(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	directory = normalizePath(strings.Trim(path.Clean("/"+directory), "/"))

	var generate func(dir string) sidebar.Sidebar
	generate = func(dir string) sidebar.Sidebar {
		entries := make([]generated, 0)

		// Subdirectories are keyed by their normalized name, the label keeps
		// the name found on disk.
		subdirs := map[string]string{}

		for _, p := range pages {
			if p.Frontmatter.Draft || p.Frontmatter.Sidebar.Hidden {
				continue
			}

			pageDir := normalizePath(p.Dir)

			if pageDir == dir {
				order := math.MaxInt
				if p.Frontmatter.Sidebar.Order != nil {
					order = *p.Frontmatter.Sidebar.Order
				}

				entries = append(entries, generated{
					order: order,
					key:   path.Base(p.Path),
					node:  p.Node(),
				})

				continue
			}

			sub, ok := childDir(dir, pageDir)
			if !ok {
				continue
			}

			label := rawSegment(p.Dir, strings.Count(path.Join(dir, sub), "/"))
			if current, exists := subdirs[sub]; !exists || label < current {
				subdirs[sub] = label
			}
		}

		for sub, label := range subdirs {
			items := generate(path.Join(dir, sub))
			if len(items) == 0 {
				continue
			}

			entries = append(entries, generated{
				order: math.MaxInt,
				key:   sub,
				node:  &sidebar.Node{Label: label, Items: items},
			})
		}

		slices.SortFunc(entries, func(a, b generated) int {
			return cmp.Or(
				cmp.Compare(a.order, b.order),
				strings.Compare(a.key, b.key),
			)
		})

		nodes := make(sidebar.Sidebar, 0, len(entries))
		for _, e := range entries {
			nodes = append(nodes, e.node)
		}

		return nodes
	}

	return generate(directory), nil
}

// Orphans returns the pages not referenced by the sidebar, drafts excluded.
func (c *Collection) Orphans(ctx context.Context, nodes sidebar.Sidebar) ([]*Page, error) {
	pages, err := c.Pages(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	referenced := map[string]struct{}{}
	for slug := range sidebar.Slugs(nodes) {
		referenced[slug] = struct{}{}
	}

	orphans := make([]*Page, 0)
	for _, p := range pages {
		if p.Frontmatter.Draft {
			continue
		}

		if _, exists := referenced[p.Slug]; !exists {
			orphans = append(orphans, p)
		}
	}

	return orphans, nil
}

func childDir(parent string, dir string) (string, bool) {
	rel := dir
	if parent != "" {
		if !strings.HasPrefix(dir, parent+"/") {
			return "", false
		}

		rel = strings.TrimPrefix(dir, parent+"/")
	}

	if rel == "" {
		return "", false
	}

	first, _, _ := strings.Cut(rel, "/")

	return first, true
}

// rawSegment returns the segment at the given index of a slash separated
// path, or an empty string when out of range.
func rawSegment(p string, idx int) string {
	segments := strings.Split(p, "/")
	if idx < 0 || idx >= len(segments) {
		return ""
	}

	return segments[idx]
}

func (c *Collection) index(ctx context.Context) (map[string]*Page, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.pages != nil {
		return c.pages, nil
	}

	pages := map[string]*Page{}

	if err := c.walk(ctx, "/", pages); err != nil {
		return nil, errors.WithStack(err)
	}

	c.logger.DebugContext(ctx, "content indexed", slog.Int("pages", len(pages)))

	c.pages = pages

	return pages, nil
}

func (c *Collection) walk(ctx context.Context, dir string, pages map[string]*Page) error {
	file, err := c.fs.OpenFile(ctx, dir, os.O_RDONLY, 0)
	if err != nil {
		return errors.Wrapf(err, "could not open directory '%s'", dir)
	}

	infos, err := file.Readdir(-1)
	file.Close()
	if err != nil {
		return errors.Wrapf(err, "could not read directory '%s'", dir)
	}

	slices.SortFunc(infos, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, info := range infos {
		name := info.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}

		filePath := path.Join(dir, name)

		if info.IsDir() {
			if err := c.walk(ctx, filePath, pages); err != nil {
				return errors.WithStack(err)
			}

			continue
		}

		if !slices.Contains(c.extensions, strings.ToLower(path.Ext(name))) {
			continue
		}

		page, err := c.readPage(ctx, filePath, info)
		if err != nil {
			return errors.WithStack(err)
		}

		if existing, exists := pages[page.Slug]; exists {
			c.logger.WarnContext(ctx, "ignoring page with duplicate slug",
				slog.String("slug", page.Slug),
				slog.String("path", page.Path),
				slog.String("existing", existing.Path),
			)
			continue
		}

		pages[page.Slug] = page
	}

	return nil
}

func (c *Collection) readPage(ctx context.Context, filePath string, info os.FileInfo) (*Page, error) {
	file, err := c.fs.OpenFile(ctx, filePath, os.O_RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open page '%s'", filePath)
	}

	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read page '%s'", filePath)
	}

	frontmatter, err := ParseFrontmatter(data)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse frontmatter of page '%s'", filePath)
	}

	rel := strings.TrimPrefix(filePath, "/")

	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}

	return &Page{
		Slug:        Slug(rel),
		Path:        rel,
		Dir:         dir,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		Frontmatter: frontmatter,
	}, nil
}

var (
	_ sidebar.Resolver  = &Collection{}
	_ sidebar.Generator = &Collection{}
	_ sidebar.Titler    = &Collection{}
)
