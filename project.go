// Package peppy models pipeline project metadata: a YAML project
// configuration plus a delimited sample annotation sheet are
// materialized into an ordered collection of Sample records with
// resolved output paths. Named "subprojects" in the config are
// partial overrides that can be activated to rebuild the project
// against a merged configuration.
package peppy

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/fabianegli/peppy/projconf"
	"github.com/fabianegli/peppy/sheet"
)

// Project owns an active configuration and the sample collection
// materialized from its annotation sheet. Not safe for concurrent
// use: ActivateSubproject replaces internal state wholesale.
type Project struct {
	configPath string

	// root is the configuration as loaded, kept pristine so a
	// different subproject can be activated later.
	root *projconf.Config

	// config is the active configuration: root, or root merged with
	// the activated subproject.
	config *projconf.Config

	subproject string
	tbl        *sheet.Table
	samples    []*Sample
}

type options struct {
	subproject string
}

// Option customizes Project construction.
type Option func(*options)

// WithSubproject activates a named subproject before any sample is
// materialized, equivalent to constructing plainly and then calling
// ActivateSubproject.
func WithSubproject(name string) Option {
	return func(o *options) { o.subproject = name }
}

// New loads the project configuration at configPath, reads the
// annotation sheet it names, and materializes one Sample per sheet
// row. Any failure aborts construction; no partially-built Project
// is returned.
func New(configPath string, opts ...Option) (*Project, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	root, err := projconf.Load(configPath)
	if err != nil {
		return nil, err
	}

	p := &Project{configPath: configPath, root: root, config: root}

	if o.subproject != "" {
		sub, err := root.Subproject(o.subproject)
		if err != nil {
			return nil, err
		}
		p.config = sub
		p.subproject = o.subproject
	}

	tbl, samples, err := p.materialize()
	if err != nil {
		return nil, err
	}
	p.tbl = tbl
	p.samples = samples

	return p, nil
}

// materialize reads the active config's annotation sheet and builds
// the sample collection in row order. It does not touch the
// Project's fields, so a failed rebuild leaves prior state intact.
func (p *Project) materialize() (*sheet.Table, []*Sample, error) {
	annPath := p.config.SampleAnnotationPath()

	data, err := os.ReadFile(annPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", sheet.ErrUnreadable, annPath, err)
	}

	tbl, err := sheet.Read(bytes.NewReader(data), delimiterFor(annPath, data))
	if err != nil {
		return nil, nil, err
	}

	cols := tbl.Columns()
	samples := make([]*Sample, 0, tbl.NumRows())
	for i := 0; i < tbl.NumRows(); i++ {
		s, err := newSample(p, cols, tbl.Row(i), i)
		if err != nil {
			return nil, nil, err
		}
		samples = append(samples, s)
	}

	return tbl, samples, nil
}

// delimiterFor infers the sheet delimiter from the file extension,
// sniffing the content when the extension is uninformative.
func delimiterFor(path string, data []byte) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt":
		return '\t'
	case ".csv":
		return ','
	}
	return sheet.DetectDelimiter(bytes.NewReader(data))
}

// ActivateSubproject merges the named subproject over the root
// configuration and rebuilds the sample collection from scratch. On
// any failure, the previously active state is left fully intact. May
// be called again with a different name.
func (p *Project) ActivateSubproject(name string) error {
	sub, err := p.root.Subproject(name)
	if err != nil {
		return err
	}

	prev := p.config
	p.config = sub
	tbl, samples, err := p.materialize()
	if err != nil {
		p.config = prev
		return err
	}

	p.subproject = name
	p.tbl = tbl
	p.samples = samples

	return nil
}

// Subproject reports the active subproject name, empty when the root
// configuration is active.
func (p *Project) Subproject() string { return p.subproject }

// Config returns the active configuration.
func (p *Project) Config() *projconf.Config { return p.config }

// NumSamples reports the sample count, which always equals the
// annotation sheet's row count.
func (p *Project) NumSamples() int { return len(p.samples) }

// Samples returns the sample collection in sheet row order.
func (p *Project) Samples() []*Sample {
	return append([]*Sample{}, p.samples...)
}

// BuildSheet produces a tabular view of the samples, in original row
// order, optionally filtered by protocol. With no protocols given,
// every sample is included: an empty allow-list means no filter, not
// exclude-everything.
func (p *Project) BuildSheet(protocols ...string) *sheet.Table {
	allow := make(map[string]bool, len(protocols))
	for _, proto := range protocols {
		allow[proto] = true
	}

	out := sheet.NewTable(p.tbl.Columns())
	for i, s := range p.samples {
		if len(allow) > 0 && !allow[s.Protocol] {
			continue
		}
		// Row counts match by construction.
		_ = out.Append(p.tbl.Row(i))
	}

	return out
}

// MakeSampleDirs creates every directory each sample expects,
// skipping those that already exist. Errors propagate; there is no
// retry.
func (p *Project) MakeSampleDirs() error {
	for _, s := range p.samples {
		if err := s.MakeSampleDirs(); err != nil {
			return err
		}
	}
	return nil
}

// dirPaths resolves the project-level directories shared by every
// sample.
func (p *Project) dirPaths() []string {
	paths := make([]string, 0, 5)
	for _, key := range []string{
		projconf.OutputDirKey,
		projconf.ResultsSubdirKey,
		projconf.SubmissionSubdirKey,
		projconf.InputDirKey,
		projconf.ToolsFolderKey,
	} {
		// The key set is fixed, so resolution cannot fail here.
		v, _ := p.config.Path(key)
		if v != "" {
			paths = append(paths, v)
		}
	}
	return paths
}

func makeDirs(paths []string) error {
	for _, path := range paths {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return pfx.Err(err)
		}
	}
	return nil
}

// String is a failsafe summary: config path, active subproject, and
// sample count.
func (p *Project) String() string {
	if p.subproject != "" {
		return fmt.Sprintf("Project %q [subproject %q] (%d samples)", p.configPath, p.subproject, len(p.samples))
	}
	return fmt.Sprintf("Project %q (%d samples)", p.configPath, len(p.samples))
}
