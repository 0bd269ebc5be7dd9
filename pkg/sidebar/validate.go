package sidebar

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type IssueCode string

const (
	CodeEmptyLabel             IssueCode = "empty-label"
	CodeEmptyGroup             IssueCode = "empty-group"
	CodeNoTarget               IssueCode = "no-target"
	CodeAmbiguousNode          IssueCode = "ambiguous-node"
	CodeInvalidSlug            IssueCode = "invalid-slug"
	CodeDuplicateSlug          IssueCode = "duplicate-slug"
	CodeUnresolvedSlug         IssueCode = "unresolved-slug"
	CodeAutogenerateUnexpanded IssueCode = "autogenerate-unexpanded"
	CodeInvalidBadge           IssueCode = "invalid-badge"
)

type Issue struct {
	Path     string
	Code     IssueCode
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s [%s]: %s", i.Severity, i.Path, i.Code, i.Message)
}

type Report struct {
	Issues []Issue
	Strict bool
}

func (r *Report) add(path string, code IssueCode, severity Severity, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Path:     path,
		Code:     code,
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Report) Errors() []Issue {
	return r.filter(SeverityError)
}

func (r *Report) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Report) filter(severity Severity) []Issue {
	issues := make([]Issue, 0)
	for _, i := range r.Issues {
		if i.Severity == severity {
			issues = append(issues, i)
		}
	}

	return issues
}

// Err returns an error summarizing the failing issues, or nil. In strict
// mode, warnings fail as well.
func (r *Report) Err() error {
	failing := r.Errors()
	if r.Strict {
		failing = append(failing, r.Warnings()...)
	}

	if len(failing) == 0 {
		return nil
	}

	messages := make([]string, 0, len(failing))
	for _, i := range failing {
		messages = append(messages, i.String())
	}

	return errors.Wrapf(ErrInvalidSidebar, "%d issue(s): %s", len(failing), strings.Join(messages, "; "))
}

var ErrInvalidSidebar = errors.New("invalid sidebar")

// Resolver checks that a slug points to an existing content page.
type Resolver interface {
	Resolve(ctx context.Context, slug string) (bool, error)
}

type ValidateOptions struct {
	Resolver Resolver
	Strict   bool
}

type ValidateOptionFunc func(opts *ValidateOptions)

func WithResolver(resolver Resolver) ValidateOptionFunc {
	return func(opts *ValidateOptions) {
		opts.Resolver = resolver
	}
}

func WithStrict(strict bool) ValidateOptionFunc {
	return func(opts *ValidateOptions) {
		opts.Strict = strict
	}
}

// Validate checks the structure of the tree and, when a resolver is given,
// that every slug points to an existing page. The returned error is only
// set when the resolver itself fails.
func Validate(ctx context.Context, nodes Sidebar, funcs ...ValidateOptionFunc) (*Report, error) {
	opts := &ValidateOptions{}
	for _, fn := range funcs {
		fn(opts)
	}

	report := &Report{
		Issues: make([]Issue, 0),
		Strict: opts.Strict,
	}

	seen := map[string]string{}

	var validate func(nodes Sidebar, prefix string) error
	validate = func(nodes Sidebar, prefix string) error {
		for idx, n := range nodes {
			path := fmt.Sprintf("%s[%d]", prefix, idx)

			if n == nil {
				report.add(path, CodeNoTarget, SeverityError, "empty entry")
				continue
			}

			if strings.TrimSpace(n.Label) == "" {
				report.add(path, CodeEmptyLabel, SeverityError, "label must not be empty")
			}

			switch n.Kind() {
			case KindInvalid:
				report.add(path, CodeNoTarget, SeverityError, "node '%s' has neither slug, link, items nor autogenerate", n.Label)

			case KindGroup:
				if len(n.Items) == 0 {
					report.add(path, CodeEmptyGroup, SeverityError, "group '%s' has no children", n.Label)
				}

			case KindAutogenerate:
				if n.Items == nil {
					report.add(path, CodeAutogenerateUnexpanded, SeverityWarning, "group '%s' autogenerates '%s' and was not expanded", n.Label, n.Autogenerate.Directory)
				} else if len(n.Items) == 0 {
					report.add(path, CodeEmptyGroup, SeverityError, "directory '%s' of group '%s' has no pages", n.Autogenerate.Directory, n.Label)
				}
			}

			if n.HasTarget() && n.IsGroup() {
				report.add(path, CodeAmbiguousNode, SeverityWarning, "node '%s' has both a target and children", n.Label)
			}

			if n.Badge != nil && !isValidBadge(n.Badge) {
				report.add(path, CodeInvalidBadge, SeverityError, "badge variant '%s' is not one of %v", n.Badge.Variant, badgeVariants)
			}

			if n.Slug != "" {
				if reason := checkSlug(n.Slug); reason != "" {
					report.add(path, CodeInvalidSlug, SeverityError, "slug '%s' %s", n.Slug, reason)
				}

				if first, exists := seen[n.Slug]; exists {
					report.add(path, CodeDuplicateSlug, SeverityError, "slug '%s' is already used at %s", n.Slug, first)
				} else {
					seen[n.Slug] = path

					if opts.Resolver != nil {
						found, err := opts.Resolver.Resolve(ctx, n.Slug)
						if err != nil {
							return errors.Wrapf(err, "could not resolve slug '%s'", n.Slug)
						}

						if !found {
							report.add(path, CodeUnresolvedSlug, SeverityError, "slug '%s' does not match any content page", n.Slug)
						}
					}
				}
			}

			if err := validate(n.Items, path+".items"); err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	}

	if err := validate(nodes, "sidebar"); err != nil {
		return nil, errors.WithStack(err)
	}

	return report, nil
}

func isValidBadge(badge *Badge) bool {
	if badge.Variant == "" {
		return true
	}

	return slices.Contains(badgeVariants, badge.Variant)
}

func checkSlug(slug string) string {
	switch {
	case strings.HasPrefix(slug, "/"):
		return "must not start with a slash"
	case strings.HasSuffix(slug, "/"):
		return "must not end with a slash"
	case strings.ContainsAny(slug, " \t\r\n"):
		return "must not contain whitespace"
	}

	for _, segment := range strings.Split(slug, "/") {
		if segment == ".." || segment == "." || segment == "" {
			return "must not contain empty or relative segments"
		}
	}

	return ""
}
