package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the optional config.yaml file.
// Role assignment mappings are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Roles RoleAssignmentConfig `yaml:"roles"`
}

// RoleAssignmentConfig maps user emails or email domains to roles applied at
// first login. Users matching nothing get the pending role and wait for a
// master to approve them.
type RoleAssignmentConfig struct {
	Masters []string `yaml:"masters"` // emails
	Editors []string `yaml:"editors"` // emails
	Viewers []string `yaml:"viewers"` // emails
	Domains []DomainRoleConfig `yaml:"domains"`
}

// DomainRoleConfig assigns a role to every email under a domain.
type DomainRoleConfig struct {
	Domain string `yaml:"domain"`
	Role   string `yaml:"role"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// RoleForEmail returns the configured role for an email, or "" when nothing
// matches. Exact email entries win over domain entries.
func (c *YAMLConfig) RoleForEmail(email string) string {
	if c == nil || email == "" {
		return ""
	}
	email = strings.ToLower(email)

	for _, e := range c.Roles.Masters {
		if strings.ToLower(e) == email {
			return "master"
		}
	}
	for _, e := range c.Roles.Editors {
		if strings.ToLower(e) == email {
			return "editor"
		}
	}
	for _, e := range c.Roles.Viewers {
		if strings.ToLower(e) == email {
			return "viewer"
		}
	}

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	domain := email[at+1:]
	for _, d := range c.Roles.Domains {
		if strings.ToLower(d.Domain) == domain {
			return d.Role
		}
	}

	return ""
}
