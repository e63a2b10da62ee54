// Package projconf loads and resolves pipeline project configuration
// files: a YAML tree with a required metadata section, an optional
// paths section, and optional named subproject overrides.
package projconf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"gopkg.in/yaml.v3"
)

// Recognized top-level sections of a project configuration.
const (
	MetadataKey    = "metadata"
	PathsKey       = "paths"
	SubprojectsKey = "subprojects"
)

// Metadata keys.
const (
	SampleAnnotationKey   = "sample_annotation"
	PipelineInterfacesKey = "pipeline_interfaces"
)

// Resolvable path keys.
const (
	OutputDirKey        = "output_dir"
	ResultsSubdirKey    = "results_subdir"
	SubmissionSubdirKey = "submission_subdir"
	InputDirKey         = "input_dir"
	ToolsFolderKey      = "tools_folder"
)

// Defaults for the two relative path keys when neither the paths
// section nor the metadata section defines them.
const (
	ResultsSubdirDefault    = "results_pipeline"
	SubmissionSubdirDefault = "submission"
)

// Metadata is the typed view of the config's metadata section. Keys
// other than the recognized ones are kept in Extra.
type Metadata struct {
	SampleAnnotation   string
	OutputDir          string
	PipelineInterfaces string
	Extra              map[string]string
}

// Config is a parsed project configuration. It is immutable after
// construction; Subproject returns a new Config rather than modifying
// the receiver.
type Config struct {
	// ConfigPath is the file the config was loaded from, if any.
	ConfigPath string

	Metadata Metadata

	// dir anchors relative paths (the config file's directory).
	dir string

	// raw is the full decoded tree, kept for subproject merging and
	// pass-through key lookup.
	raw map[string]interface{}

	// paths is the optional paths section, flattened to scalars.
	paths map[string]string

	// metadata is the scalar-flattened metadata section, consulted
	// for path keys after the paths section.
	metadata map[string]string

	subprojects map[string]map[string]interface{}
}

// Load reads and decodes a YAML project configuration from disk.
// Relative paths named by the config are later resolved against the
// config file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigUnreadable, path, err)
	}

	cfg, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	cfg.ConfigPath = path

	return cfg, nil
}

// Parse decodes a YAML project configuration from bytes. dir anchors
// relative paths, playing the role of the config file's directory.
func Parse(data []byte, dir string) (*Config, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnreadable, err)
	}
	if raw == nil {
		raw = make(map[string]interface{})
	}

	return fromRaw(raw, dir)
}

// fromRaw builds a Config from an already-decoded tree. Shared by
// Parse and Subproject.
func fromRaw(raw map[string]interface{}, dir string) (*Config, error) {
	cfg := &Config{
		dir:         dir,
		raw:         raw,
		paths:       scalarsOf(raw, PathsKey),
		metadata:    scalarsOf(raw, MetadataKey),
		subprojects: make(map[string]map[string]interface{}),
	}

	if _, ok := raw[MetadataKey]; !ok {
		return nil, fmt.Errorf("%w: missing %q section", ErrConfigUnreadable, MetadataKey)
	}
	if cfg.metadata[SampleAnnotationKey] == "" {
		return nil, fmt.Errorf("%w: metadata lacks %q", ErrConfigUnreadable, SampleAnnotationKey)
	}

	cfg.Metadata = Metadata{
		SampleAnnotation:   cfg.metadata[SampleAnnotationKey],
		OutputDir:          cfg.metadata[OutputDirKey],
		PipelineInterfaces: cfg.metadata[PipelineInterfacesKey],
		Extra:              make(map[string]string),
	}
	for k, v := range cfg.metadata {
		switch k {
		case SampleAnnotationKey, OutputDirKey, PipelineInterfacesKey:
		default:
			cfg.Metadata.Extra[k] = v
		}
	}

	if subs, ok := raw[SubprojectsKey].(map[string]interface{}); ok {
		for name, block := range subs {
			override, ok := block.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: subproject %q is not a mapping", ErrConfigUnreadable, name)
			}
			cfg.subprojects[name] = override
		}
	}

	return cfg, nil
}

// scalarsOf flattens the scalar values of a named top-level mapping.
// Nested mappings and sequences are skipped; they are reachable via
// the raw tree when needed.
func scalarsOf(raw map[string]interface{}, key string) map[string]string {
	out := make(map[string]string)
	section, ok := raw[key].(map[string]interface{})
	if !ok {
		return out
	}
	for k, v := range section {
		switch val := v.(type) {
		case string:
			out[k] = val
		case int, int64, float64, bool:
			out[k] = fmt.Sprintf("%v", val)
		}
	}
	return out
}

// lookup finds a path key, preferring the paths section over the
// metadata section.
func (c *Config) lookup(key string) (string, bool) {
	if v, ok := c.paths[key]; ok {
		return v, true
	}
	if v, ok := c.metadata[key]; ok {
		return v, true
	}
	return "", false
}

// OutputDir resolves the project's output directory, defaulting to
// the config file's directory. Placeholders are expanded now, not at
// load time.
func (c *Config) OutputDir() string {
	v, ok := c.lookup(OutputDirKey)
	if !ok || v == "" {
		return c.dir
	}
	return ExpandPath(v)
}

// Path resolves one of the recognized path keys. The results and
// submission subdirectories are relative to the output directory and
// are returned joined onto it; the remaining keys are taken as given.
func (c *Config) Path(key string) (string, error) {
	switch key {
	case OutputDirKey:
		return c.OutputDir(), nil
	case ResultsSubdirKey, SubmissionSubdirKey:
		v, ok := c.lookup(key)
		if !ok || v == "" {
			if key == ResultsSubdirKey {
				v = ResultsSubdirDefault
			} else {
				v = SubmissionSubdirDefault
			}
		}
		return filepath.Join(c.OutputDir(), ExpandPath(v)), nil
	case InputDirKey, ToolsFolderKey:
		v, _ := c.lookup(key)
		if v == "" {
			return "", nil
		}
		return ExpandPath(v), nil
	}

	return "", pfx.Err(fmt.Errorf("unrecognized path key: %q", key))
}

// SampleAnnotationPath resolves the annotation sheet location,
// anchoring a relative value at the config file's directory.
func (c *Config) SampleAnnotationPath() string {
	p := ExpandPath(c.Metadata.SampleAnnotation)
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.dir, p)
	}
	return p
}

// Raw returns the decoded configuration tree. Callers must not
// modify it.
func (c *Config) Raw() map[string]interface{} { return c.raw }

// Dir returns the directory that anchors the config's relative paths.
func (c *Config) Dir() string { return c.dir }
