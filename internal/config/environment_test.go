package config

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

func TestInterpolatedMap(t *testing.T) {
	type testCase struct {
		Path   string
		Env    map[string]string
		Assert func(t *testing.T, parsed InterpolatedMap)
	}

	testCases := []testCase{
		{
			Path: "testdata/environment/interpolated-map-1.yml",
			Env: map[string]string{
				"TEST_PROP1":      "foo",
				"TEST_SUB_PROP1":  "bar",
				"TEST_SUB2_PROP1": "baz",
			},
			Assert: func(t *testing.T, parsed InterpolatedMap) {
				if e, g := "foo", parsed.Data["prop1"]; e != g {
					t.Errorf("parsed.Data[\"prop1\"]: expected '%v', got '%v'", e, g)
				}

				if e, g := "bar", parsed.Data["sub"].(map[string]any)["subProp1"]; e != g {
					t.Errorf("parsed.Data[\"sub\"][\"subProp1\"]: expected '%v', got '%v'", e, g)
				}

				if e, g := "baz", parsed.Data["sub2"].(map[string]any)["sub2Prop1"].([]any)[0]; e != g {
					t.Errorf("parsed.Data[\"sub2\"][\"sub2Prop1\"][0]: expected '%v', got '%v'", e, g)
				}

				if e, g := "test", parsed.Data["sub2"].(map[string]any)["sub2Prop1"].([]any)[1]; e != g {
					t.Errorf("parsed.Data[\"sub2\"][\"sub2Prop1\"][1]: expected '%v', got '%v'", e, g)
				}
			},
		},
		{
			Path: "testdata/environment/interpolated-map-2.yml",
			Env: map[string]string{
				"BAR": "bar",
			},
			Assert: func(t *testing.T, parsed InterpolatedMap) {
				if e, g := "http://bar", parsed.Data["foo"]; e != g {
					t.Errorf("parsed.Data[\"foo\"]: expected '%v', got '%v'", e, g)
				}
			},
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			data, err := os.ReadFile(tc.Path)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			var interpolatedMap InterpolatedMap

			if tc.Env != nil {
				setEnv(t, tc.Env)
			}

			if err := yaml.Unmarshal(data, &interpolatedMap); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if tc.Assert != nil {
				tc.Assert(t, interpolatedMap)
			}
		})
	}
}

func TestInterpolatedDuration(t *testing.T) {
	type testCase struct {
		Path   string
		Env    map[string]string
		Assert func(t *testing.T, parsed *InterpolatedDuration)
	}

	testCases := []testCase{
		{
			Path: "testdata/environment/interpolated-duration.yml",
			Env: map[string]string{
				"MY_DURATION": "30s",
			},
			Assert: func(t *testing.T, parsed *InterpolatedDuration) {
				if e, g := 30*time.Second, parsed; e != time.Duration(*g) {
					t.Errorf("parsed: expected '%v', got '%v'", e, g)
				}
			},
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			data, err := os.ReadFile(tc.Path)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if tc.Env != nil {
				setEnv(t, tc.Env)
			}

			config := struct {
				Duration *InterpolatedDuration `yaml:"duration"`
			}{
				Duration: NewInterpolatedDuration(-1),
			}

			if err := yaml.Unmarshal(data, &config); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if tc.Assert != nil {
				tc.Assert(t, config.Duration)
			}
		})
	}
}

func TestInterpolatedScalars(t *testing.T) {
	setEnv(t, map[string]string{
		"RATE":    "2.5",
		"BURST":   "7",
		"ENABLED": "true",
	})

	config := struct {
		Rate    InterpolatedFloat       `yaml:"rate"`
		Burst   InterpolatedInt         `yaml:"burst"`
		Enabled InterpolatedBool        `yaml:"enabled"`
		Missing InterpolatedString      `yaml:"missing"`
		Rules   InterpolatedStringSlice `yaml:"rules"`
	}{}

	data := []byte("rate: ${RATE}\nburst: ${BURST}\nenabled: ${ENABLED}\nmissing: ${UNSET:-fallback}\nrules:\n  - depth > ${BURST}\n")

	if err := yaml.Unmarshal(data, &config); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2.5, float64(config.Rate); e != g {
		t.Errorf("config.Rate: expected '%v', got '%v'", e, g)
	}

	if e, g := 7, int(config.Burst); e != g {
		t.Errorf("config.Burst: expected '%v', got '%v'", e, g)
	}

	if !bool(config.Enabled) {
		t.Errorf("config.Enabled: expected 'true', got 'false'")
	}

	if e, g := "fallback", string(config.Missing); e != g {
		t.Errorf("config.Missing: expected '%v', got '%v'", e, g)
	}

	if e, g := "depth > 7", config.Rules[0]; e != g {
		t.Errorf("config.Rules[0]: expected '%v', got '%v'", e, g)
	}
}

func setEnv(t *testing.T, env map[string]string) {
	previous := getEnv

	getEnv = func(key string) string {
		return env[key]
	}

	t.Cleanup(func() {
		getEnv = previous
	})
}
