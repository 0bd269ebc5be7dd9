package starlight

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"github.com/bornholm/sidenav/pkg/sidebar"
)

const declaration = `
- label: Projects
  items:
    - label: Just-Blade
      slug: just-blade
    - wp-theme
- label: Reference
  autogenerate:
    directory: reference
`

func newTestConfig(t *testing.T) *Config {
	t.Helper()

	nodes, err := sidebar.DecodeBytes([]byte(declaration))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return &Config{
		Site:        "https://liferay-studio.github.io",
		Title:       "Liferay Studio",
		Description: "Liferay Studio is a collection of tools and projects for Liferay developers.",
		Social: []Social{
			{Icon: "github", Label: "GitHub", Href: "https://liferay-studio.github.io"},
		},
		Head: []HeadEntry{
			{Tag: "script", Attrs: map[string]any{"src": "/analytics.js", "async": true}},
		},
		Sidebar: nodes,
	}
}

func TestWriteMJS(t *testing.T) {
	data, err := WriteBytes(newTestConfig(t), FormatMJS)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	output := string(data)

	t.Logf("%s", output)

	lines := map[string]struct{}{}
	for line := range strings.Lines(output) {
		lines[strings.TrimSpace(line)] = struct{}{}
	}

	expected := []string{
		`import starlight from "@astrojs/starlight";`,
		`site: "https://liferay-studio.github.io",`,
		`title: "Liferay Studio",`,
		`description: "Liferay Studio is a collection of tools and projects for Liferay developers.",`,
		`"label": "Just-Blade",`,
		`"slug": "just-blade"`,
		`"wp-theme"`,
		`"directory": "reference"`,
		`"async": true,`,
		`}),`,
		`});`,
	}

	for _, e := range expected {
		if _, exists := lines[e]; !exists {
			t.Errorf("output: expected a line '%s'", e)
		}
	}

	if strings.Contains(output, "customCss") {
		t.Errorf("output: expected empty customCss to be omitted")
	}

	if strings.Index(output, "Projects") > strings.Index(output, "Reference") {
		t.Errorf("output: expected sidebar order to be preserved")
	}
}

func TestWriteJSON(t *testing.T) {
	config := newTestConfig(t)

	data, err := WriteBytes(config, FormatJSON)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := config.Title, decoded["title"]; e != g {
		t.Errorf("decoded[\"title\"]: expected '%v', got '%v'", e, g)
	}

	items, ok := decoded["sidebar"].([]any)
	if !ok {
		t.Fatalf("decoded[\"sidebar\"]: expected a list, got '%T'", decoded["sidebar"])
	}

	if e, g := 2, len(items); e != g {
		t.Fatalf("len(items): expected '%v', got '%v'", e, g)
	}

	projects, ok := items[0].(map[string]any)
	if !ok {
		t.Fatalf("items[0]: expected an object, got '%T'", items[0])
	}

	children, ok := projects["items"].([]any)
	if !ok {
		t.Fatalf("projects[\"items\"]: expected a list, got '%T'", projects["items"])
	}

	if e, g := "wp-theme", children[1]; e != g {
		t.Errorf("children[1]: expected '%v', got '%v'", e, g)
	}
}

func TestWriteYAML(t *testing.T) {
	config := newTestConfig(t)

	data, err := WriteBytes(config, FormatYAML)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	var decoded struct {
		Title   string `yaml:"title"`
		Sidebar []any  `yaml:"sidebar"`
	}

	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := config.Title, decoded.Title; e != g {
		t.Errorf("decoded.Title: expected '%v', got '%v'", e, g)
	}

	nodes, err := sidebar.FromDeclaration(decoded.Sidebar)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !sidebar.Equal(config.Sidebar, nodes) {
		t.Errorf("nodes: expected decoded sidebar to equal the written one")
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if _, err := WriteBytes(newTestConfig(t), Format("toml")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err: expected ErrUnknownFormat, got '%v'", err)
	}
}

func TestParseFormat(t *testing.T) {
	type testCase struct {
		Raw      string
		Expected Format
		Fail     bool
	}

	testCases := []testCase{
		{Raw: "mjs", Expected: FormatMJS},
		{Raw: "JSON", Expected: FormatJSON},
		{Raw: "yml", Expected: FormatYAML},
		{Raw: " yaml ", Expected: FormatYAML},
		{Raw: "toml", Fail: true},
	}

	for _, tc := range testCases {
		format, err := ParseFormat(tc.Raw)
		if tc.Fail {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat('%s'): expected ErrUnknownFormat, got '%v'", tc.Raw, err)
			}
			continue
		}

		if err != nil {
			t.Errorf("ParseFormat('%s'): %+v", tc.Raw, errors.WithStack(err))
			continue
		}

		if e, g := tc.Expected, format; e != g {
			t.Errorf("ParseFormat('%s'): expected '%v', got '%v'", tc.Raw, e, g)
		}
	}
}
