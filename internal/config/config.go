// Package config loads the demo CLI's tunable settings: environment
// variables into a plain struct via caarlos0/env, and a diagnostic
// rule-severity override file via yaml.v3 (SPEC_FULL.md's AMBIENT STACK).
package config

import (
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"

	"github.com/mna/pybind/diag"
)

// Env holds the settings the demo CLI reads from the process environment.
// Field tags follow caarlos0/env's convention, mirroring how a production
// binary in this family would expose its knobs without a flag for each one.
type Env struct {
	LogLevel        string `env:"PYBIND_LOG_LEVEL" envDefault:"info"`
	LanguageVersion string `env:"PYBIND_LANGUAGE_VERSION" envDefault:"3.12"`
	StubSearchPaths []string `env:"PYBIND_STUB_PATH" envSeparator:":"`
}

// LoadEnv parses the process environment into an Env, applying defaults for
// any variable that isn't set.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, err
	}
	return cfg, nil
}

// RuleSeverity is the on-disk shape of a rule-severity override file (e.g.
// pybind.yaml): a flat map from rule name to one of "error", "warning",
// "information" or "unused-code".
type RuleSeverity struct {
	Rules map[string]string `yaml:"rules"`
}

// LoadRuleSeverity reads and parses a rule-severity override file at path,
// returning it as the map a binder.FileInfo.DiagnosticSettings.RuleSeverity
// field expects. A missing file is not an error: it simply yields no
// overrides, matching how FileInfo.DiagnosticSettings falls back to each
// rule's built-in default when an entry is absent.
func LoadRuleSeverity(path string) (map[string]diag.Severity, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var raw RuleSeverity
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	out := make(map[string]diag.Severity, len(raw.Rules))
	for rule, name := range raw.Rules {
		out[rule] = parseSeverity(name)
	}
	return out, nil
}

func parseSeverity(name string) diag.Severity {
	switch name {
	case "warning":
		return diag.SeverityWarning
	case "information":
		return diag.SeverityInformation
	case "unused-code":
		return diag.SeverityUnusedCode
	default:
		return diag.SeverityError
	}
}
