package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is one named credential set in the profiles file. TestMode is a
// pointer so an unset value falls back to the environment setting.
type Profile struct {
	Name     string `yaml:"name"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	TestMode *bool  `yaml:"test_mode"`
}

// ProfileRegistry resolves profiles by name.
type ProfileRegistry struct {
	profiles []Profile
	byName   map[string]Profile
}

type profilesFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadProfiles loads the credential profiles registry from a YAML file.
func LoadProfiles(path string) (*ProfileRegistry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("profiles file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	var file profilesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode profiles yaml: %w", err)
	}
	if len(file.Profiles) == 0 {
		return nil, errors.New("profiles file contains no profiles entries")
	}

	byName := make(map[string]Profile, len(file.Profiles))
	for i := range file.Profiles {
		p := sanitizeProfile(file.Profiles[i])
		if err := validateProfile(p); err != nil {
			return nil, fmt.Errorf("profile[%d]: %w", i, err)
		}
		if _, exists := byName[p.Name]; exists {
			return nil, fmt.Errorf("duplicate profile name %q", p.Name)
		}
		file.Profiles[i] = p
		byName[p.Name] = p
	}

	return &ProfileRegistry{profiles: file.Profiles, byName: byName}, nil
}

// All returns a copy of the loaded profiles.
func (r *ProfileRegistry) All() []Profile {
	if r == nil || len(r.profiles) == 0 {
		return nil
	}
	out := make([]Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// ByName returns the profile with the given name, if loaded.
func (r *ProfileRegistry) ByName(name string) (Profile, bool) {
	name = strings.TrimSpace(name)
	if r == nil || name == "" {
		return Profile{}, false
	}
	p, ok := r.byName[name]
	return p, ok
}

func sanitizeProfile(p Profile) Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.APIKey = strings.TrimSpace(p.APIKey)
	p.BaseURL = strings.TrimSpace(p.BaseURL)
	return p
}

func validateProfile(p Profile) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.APIKey == "" {
		return fmt.Errorf("api_key is required for profile %q", p.Name)
	}
	return nil
}
