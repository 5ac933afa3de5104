// Package config reads the engine's optional drift.yaml configuration,
// adapted from the teacher's cmd/drift/internal/config package: the same
// module-path resolution and app metadata defaults, plus an engine.physics
// block exposing the tunable scroll-physics constants spec §6 calls out as
// externally configurable via initialize().
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Config represents the optional drift.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Engine EngineConfig `yaml:"engine"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	ID   string `yaml:"id,omitempty"`
}

// EngineConfig contains engine settings, including the tunable physics
// constants spec §6 lists as configurable via initialize().
type EngineConfig struct {
	Version string        `yaml:"version,omitempty"`
	Physics PhysicsConfig `yaml:"physics"`
}

// PhysicsConfig carries the Android spline-fling tunables, defaulting to
// the Android OverScroller constants per spec §6: "2000, 0.35, 0.5, 1.0,
// 9.80665·39.37·160·0.84, 2.3582017."
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity,omitempty"`
	Inflexion         float64 `yaml:"inflexion,omitempty"`
	StartTension      float64 `yaml:"startTension,omitempty"`
	EndTension        float64 `yaml:"endTension,omitempty"`
	PhysicalCoef      float64 `yaml:"physicalCoef,omitempty"`
	DecelerationRate  float64 `yaml:"decelerationRate,omitempty"`
}

// DefaultPhysicsConfig returns the Android OverScroller defaults.
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:          2000,
		Inflexion:        0.35,
		StartTension:     0.5,
		EndTension:       1.0,
		PhysicalCoef:     9.80665 * 39.37 * 160.0 * 0.84,
		DecelerationRate: 2.3582017,
	}
}

// withDefaults fills any zero-valued physics field with the Android
// OverScroller default, so a drift.yaml that only overrides gravity still
// gets sane values for everything else.
func (p PhysicsConfig) withDefaults() PhysicsConfig {
	d := DefaultPhysicsConfig()
	if p.Gravity == 0 {
		p.Gravity = d.Gravity
	}
	if p.Inflexion == 0 {
		p.Inflexion = d.Inflexion
	}
	if p.StartTension == 0 {
		p.StartTension = d.StartTension
	}
	if p.EndTension == 0 {
		p.EndTension = d.EndTension
	}
	if p.PhysicalCoef == 0 {
		p.PhysicalCoef = d.PhysicalCoef
	}
	if p.DecelerationRate == 0 {
		p.DecelerationRate = d.DecelerationRate
	}
	return p
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root          string
	ModulePath    string
	AppName       string
	AppID         string
	EngineVersion string
	Physics       PhysicsConfig
}

// LoadOptional reads drift.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "drift.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read drift.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse drift.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads drift.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	appID := strings.TrimSpace(cfg.App.ID)
	if appID == "" {
		appID = defaultAppID(modulePath, appName)
	}

	engineVersion := strings.TrimSpace(cfg.Engine.Version)
	if engineVersion == "" {
		engineVersion = "latest"
	}

	if err := validateAppID(appID); err != nil {
		return nil, err
	}

	return &Resolved{
		Root:          dir,
		ModulePath:    modulePath,
		AppName:       appName,
		AppID:         appID,
		EngineVersion: engineVersion,
		Physics:       cfg.Engine.Physics.withDefaults(),
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "drift_app"
	}
	return base
}

func defaultAppID(modulePath, appName string) string {
	parts := strings.Split(modulePath, "/")
	if len(parts) < 2 || !strings.Contains(parts[0], ".") {
		return fmt.Sprintf("com.example.%s", sanitizeSegment(appName, true))
	}

	host := strings.Split(parts[0], ".")
	for i, j := 0, len(host)-1; i < j; i, j = i+1, j-1 {
		host[i], host[j] = host[j], host[i]
	}

	var pathParts []string
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		pathParts = append(pathParts, p)
	}

	segments := append(host, pathParts...)
	for i, segment := range segments {
		segments[i] = sanitizeSegment(segment, i > 0)
	}

	return strings.Join(segments, ".")
}

func sanitizeSegment(segment string, allowLeadingDigit bool) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		segment = "app"
	}

	var out []rune
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= '0' && r <= '9':
			out = append(out, r)
		case r == '_' || r == '-':
			// Skip hyphens and underscores - they cause issues with xtool's
			// bundle ID name generation for Apple's Developer API
		default:
			// Skip other invalid characters
		}
	}

	if len(out) == 0 {
		out = []rune("app")
	}

	if !allowLeadingDigit && out[0] >= '0' && out[0] <= '9' {
		out = append([]rune{'a'}, out...)
	}

	return string(out)
}

func validateAppID(appID string) error {
	if !strings.Contains(appID, ".") {
		return fmt.Errorf("app.id must contain at least one '.' (got %q)", appID)
	}
	segments := strings.Split(appID, ".")
	for _, segment := range segments {
		if segment == "" {
			return fmt.Errorf("app.id contains an empty segment (%q)", appID)
		}
		if segment[0] >= '0' && segment[0] <= '9' {
			return fmt.Errorf("app.id segments cannot start with a digit (%q)", appID)
		}
		if segment[0] == '_' {
			return fmt.Errorf("app.id segments cannot start with '_' (%q)", appID)
		}
		for _, r := range segment {
			if !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
				return fmt.Errorf("app.id contains invalid character %q in %q", r, appID)
			}
		}
	}
	return nil
}
