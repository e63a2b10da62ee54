package projconf

import (
	"fmt"
	"sort"
)

// Merge layers override onto base and returns the merged tree.
// Mapping values merge recursively; any other value in the override
// (scalar or sequence) replaces the base's value wholesale. Neither
// input is modified.
func Merge(base, override map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}

	for k, v := range override {
		baseMap, baseOK := out[k].(map[string]interface{})
		overrideMap, overrideOK := v.(map[string]interface{})
		if baseOK && overrideOK {
			out[k] = Merge(baseMap, overrideMap)
			continue
		}
		out[k] = v
	}

	return out
}

// Subproject returns a new Config with the named subproject's partial
// tree merged over the receiver's. The receiver is left intact, so a
// root Config remains usable for activating a different subproject
// later.
func (c *Config) Subproject(name string) (*Config, error) {
	override, ok := c.subprojects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownSubproject, name, c.SubprojectNames())
	}

	sub, err := fromRaw(Merge(c.raw, override), c.dir)
	if err != nil {
		return nil, err
	}
	sub.ConfigPath = c.ConfigPath

	return sub, nil
}

// SubprojectNames lists the config's subproject names, sorted.
func (c *Config) SubprojectNames() []string {
	names := make([]string, 0, len(c.subprojects))
	for name := range c.subprojects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
