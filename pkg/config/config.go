// Package config defines the resolved lint configuration types.
// These are pure data structures; discovery and parsing live in
// internal/configloader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleSetting holds per-rule configuration from a lintrc file.
type RuleSetting struct {
	// Enabled turns the rule on or off.
	Enabled bool

	// Options holds rule-specific options. Legacy configs have no options
	// and leave this nil.
	Options map[string]any
}

// Configuration is the parsed rule-set discovered by directory ascent.
// It is associated with the directory the config file was found in, so it
// is shared by every file under that directory.
type Configuration struct {
	// Path is the config file this configuration was loaded from.
	Path string

	// Dir is the directory containing the config file.
	Dir string

	// Rules maps rule ID to its setting.
	Rules map[string]RuleSetting
}

// RuleEnabled reports whether the given rule is enabled.
// Rules absent from the configuration are disabled.
func (c *Configuration) RuleEnabled(ruleID string) bool {
	if c == nil {
		return false
	}
	setting, ok := c.Rules[ruleID]
	return ok && setting.Enabled
}

// EnabledRules returns the IDs of all enabled rules.
func (c *Configuration) EnabledRules() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.Rules))
	for id, setting := range c.Rules {
		if setting.Enabled {
			ids = append(ids, id)
		}
	}
	return ids
}
