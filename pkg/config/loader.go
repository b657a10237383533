package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads, defaults and validates a configuration file. Configuration is
// validated strictly and atomically before anything touches a socket or the
// VPP API; a bad config means the process never starts.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Handler == "" {
		c.Handler = "log"
	}
	if c.Exporter.Enabled && c.Exporter.ListenAddress == "" {
		c.Exporter.ListenAddress = ":9090"
	}

	for i := range c.Listeners {
		c.Listeners[i].Socket = normalizeSocketPath(c.Listeners[i].Socket)
	}
}

// normalizeSocketPath canonicalizes a listener socket path. The socket itself
// does not exist yet, but its directory usually does, so symlinks in the
// directory part are resolved and two spellings of the same socket collide in
// the uniqueness check.
func normalizeSocketPath(path string) string {
	cleaned := filepath.Clean(path)
	if dir, err := filepath.EvalSymlinks(filepath.Dir(cleaned)); err == nil {
		return filepath.Join(dir, filepath.Base(cleaned))
	}
	return cleaned
}

// Validate enforces the configuration schema: cardinality, address literals
// and scopes, path checks, and section-name uniqueness. Address defaults that
// depend on live interface state are resolved later by the listener factory,
// not here.
func (c *Config) Validate() error {
	seenSockets := make(map[string]int)

	for i := range c.Listeners {
		l := &c.Listeners[i]

		if l.Socket == "" || l.Socket == "." {
			return fmt.Errorf("listeners[%d].socket: a socket path is required", i)
		}

		if prev, dup := seenSockets[l.Socket]; dup {
			return fmt.Errorf("listeners[%d].socket: %q already used by listeners[%d]", i, l.Socket, prev)
		}
		seenSockets[l.Socket] = i

		if l.APIDefinitions != "" {
			st, err := os.Stat(l.APIDefinitions)
			if err != nil {
				return fmt.Errorf("listeners[%d].api-definitions: %q: %w", i, l.APIDefinitions, err)
			}
			if !st.IsDir() {
				return fmt.Errorf("listeners[%d].api-definitions: %q is not a directory", i, l.APIDefinitions)
			}
		}

		if len(l.Interfaces) == 0 {
			return fmt.Errorf("listeners[%d]: at least one vpp-interface is required", i)
		}

		seenNames := make(map[string]int)
		for j := range l.Interfaces {
			ifc := &l.Interfaces[j]

			if ifc.Name == "" {
				return fmt.Errorf("listeners[%d].vpp-interfaces[%d].name: an interface name is required", i, j)
			}

			if prev, dup := seenNames[ifc.Name]; dup {
				return fmt.Errorf("listeners[%d].vpp-interfaces[%d].name: %q already declared at vpp-interfaces[%d]", i, j, ifc.Name, prev)
			}
			seenNames[ifc.Name] = j

			if addr, ok, err := ifc.ReplyFromAddr(); err != nil {
				return fmt.Errorf("listeners[%d].vpp-interfaces[%d].reply-from: %w", i, j, err)
			} else if ok && !IsLinkLocal(addr) {
				return fmt.Errorf("listeners[%d].vpp-interfaces[%d].reply-from: %s must be a link-local address", i, j, addr)
			}

			if addr, ok, err := ifc.LinkAddressAddr(); err != nil {
				return fmt.Errorf("listeners[%d].vpp-interfaces[%d].link-address: %w", i, j, err)
			} else if ok && !IsGlobalUnicast(addr) {
				return fmt.Errorf("listeners[%d].vpp-interfaces[%d].link-address: %s must be a global unicast address", i, j, addr)
			}
		}
	}

	return nil
}
