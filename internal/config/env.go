package config

import (
	"os"
	"os/user"
	"strings"
)

// Environment describes the host, for the welcome banner only.
type Environment struct {
	ComputeCanada bool
	Cluster       string
}

// DetectEnvironment reads CC_CLUSTER, which Compute Canada sets on every
// cluster. override, when non-empty, replaces the detected cluster name.
func DetectEnvironment(getenv func(string) string, override string) Environment {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := Environment{}
	if cluster := strings.TrimSpace(getenv("CC_CLUSTER")); cluster != "" {
		env.ComputeCanada = true
		env.Cluster = cluster
	}
	if name := strings.TrimSpace(override); name != "" {
		env.Cluster = name
	}
	return env
}

// CurrentUser is the login name squeue filters on.
func CurrentUser() string {
	candidates := []string{
		os.Getenv("USER"),
		os.Getenv("USERNAME"),
	}
	for _, candidate := range candidates {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
