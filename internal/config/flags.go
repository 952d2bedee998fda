package config

import (
	"fmt"
	"strings"
)

// Overrides collects repeatable key=value flags.
type Overrides []string

func (o *Overrides) String() string {
	return strings.Join(*o, ",")
}

// Set appends one override.
func (o *Overrides) Set(value string) error {
	*o = append(*o, value)
	return nil
}

// Apply applies every override to cfg in order.
func (o Overrides) Apply(cfg *Config) error {
	for _, kv := range o {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return &OverrideError{Entry: kv}
		}
		if err := ApplyOverride(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// OverrideError reports a malformed key=value entry.
type OverrideError struct {
	Entry string
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("override %q is not key=value", e.Entry)
}
