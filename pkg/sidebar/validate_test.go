package sidebar

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

type mapResolver map[string]bool

func (r mapResolver) Resolve(ctx context.Context, slug string) (bool, error) {
	return r[slug], nil
}

type failingResolver struct{}

func (failingResolver) Resolve(ctx context.Context, slug string) (bool, error) {
	return false, errors.New("unavailable")
}

func TestValidate(t *testing.T) {
	type testCase struct {
		Nodes    Sidebar
		Options  []ValidateOptionFunc
		Expected []IssueCode
		Fail     bool
	}

	testCases := []testCase{
		{
			Nodes: Sidebar{
				{Label: "Introduction", Items: Sidebar{{Label: "What is Liferay?", Slug: "introduction/what-is-liferay"}}},
			},
			Expected: []IssueCode{},
		},
		{
			Nodes:    Sidebar{{Label: "", Slug: "foo"}},
			Expected: []IssueCode{CodeEmptyLabel},
			Fail:     true,
		},
		{
			Nodes:    Sidebar{{Label: "Empty", Items: Sidebar{}}},
			Expected: []IssueCode{CodeEmptyGroup},
			Fail:     true,
		},
		{
			Nodes:    Sidebar{{Label: "Nothing"}},
			Expected: []IssueCode{CodeNoTarget},
			Fail:     true,
		},
		{
			Nodes:    Sidebar{{Label: "Both", Slug: "both", Items: Sidebar{{Label: "Child", Slug: "child"}}}},
			Expected: []IssueCode{CodeAmbiguousNode},
		},
		{
			Nodes:    Sidebar{{Label: "Both", Slug: "both", Items: Sidebar{{Label: "Child", Slug: "child"}}}},
			Options:  []ValidateOptionFunc{WithStrict(true)},
			Expected: []IssueCode{CodeAmbiguousNode},
			Fail:     true,
		},
		{
			Nodes: Sidebar{
				{Label: "A", Slug: "/a"},
				{Label: "B", Slug: "b/../c"},
				{Label: "C", Slug: "with space"},
			},
			Expected: []IssueCode{CodeInvalidSlug, CodeInvalidSlug, CodeInvalidSlug},
			Fail:     true,
		},
		{
			Nodes: Sidebar{
				{Label: "Guide", Slug: "guide"},
				{Label: "Group", Items: Sidebar{{Label: "Guide again", Slug: "guide"}}},
			},
			Expected: []IssueCode{CodeDuplicateSlug},
			Fail:     true,
		},
		{
			Nodes: Sidebar{
				{Label: "Known", Slug: "known"},
				{Label: "Unknown", Slug: "unknown"},
				{Label: "Forum", Link: "https://example.net"},
			},
			Options:  []ValidateOptionFunc{WithResolver(mapResolver{"known": true})},
			Expected: []IssueCode{CodeUnresolvedSlug},
			Fail:     true,
		},
		{
			Nodes:    Sidebar{{Label: "Themes", Autogenerate: &Autogenerate{Directory: "themes"}}},
			Expected: []IssueCode{CodeAutogenerateUnexpanded},
		},
		{
			Nodes:    Sidebar{{Label: "Guide", Slug: "guide", Badge: &Badge{Text: "New", Variant: "shiny"}}},
			Expected: []IssueCode{CodeInvalidBadge},
			Fail:     true,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			report, err := Validate(context.Background(), tc.Nodes, tc.Options...)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := len(tc.Expected), len(report.Issues); e != g {
				t.Fatalf("len(report.Issues): expected '%v', got '%v' (%v)", e, g, report.Issues)
			}

			for i, code := range tc.Expected {
				if e, g := code, report.Issues[i].Code; e != g {
					t.Errorf("report.Issues[%d].Code: expected '%v', got '%v'", i, e, g)
				}
			}

			err = report.Err()
			if tc.Fail && err == nil {
				t.Errorf("report.Err(): expected error, got nil")
			}

			if !tc.Fail && err != nil {
				t.Errorf("report.Err(): expected nil, got '%v'", err)
			}

			if err != nil && !errors.Is(err, ErrInvalidSidebar) {
				t.Errorf("report.Err(): expected ErrInvalidSidebar, got '%v'", err)
			}
		})
	}
}

func TestValidateResolverFailure(t *testing.T) {
	nodes := Sidebar{{Label: "Guide", Slug: "guide"}}

	if _, err := Validate(context.Background(), nodes, WithResolver(failingResolver{})); err == nil {
		t.Errorf("err: expected error, got nil")
	}
}

func TestValidateIssuePath(t *testing.T) {
	nodes := Sidebar{
		{Label: "Group", Items: Sidebar{{Label: "Ok", Slug: "ok"}, {Label: ""}}},
	}

	report, err := Validate(context.Background(), nodes)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "sidebar[0].items[1]", report.Issues[0].Path; e != g {
		t.Errorf("report.Issues[0].Path: expected '%v', got '%v'", e, g)
	}
}
