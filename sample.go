package peppy

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/fabianegli/peppy/projconf"
)

// Column names recognized, in order, as carrying a sample's
// protocol/assay tag.
var protocolColumns = []string{"protocol", "library", "assay"}

// Sample is one annotation sheet row plus attributes derived from the
// owning Project's configuration. A Sample is immutable once built;
// MakeSampleDirs only touches the filesystem.
type Sample struct {
	// Name is the value of the sheet's first column. Never empty.
	Name string

	// Protocol is the sample's assay tag, empty when the sheet has
	// no protocol column.
	Protocol string

	// SampleRoot is the per-sample results directory,
	// results_subdir joined with the sample name.
	SampleRoot string

	cols   []string
	values []string

	// prj is a non-owning back-reference used for path resolution.
	// It never appears in the Sample's text representations.
	prj *Project
}

func newSample(prj *Project, cols, row []string, rowIdx int) (*Sample, error) {
	if len(cols) == 0 || row[0] == "" {
		return nil, pfx.Err(fmt.Errorf("row %d: missing sample name", rowIdx+1))
	}

	s := &Sample{
		Name:   row[0],
		cols:   cols,
		values: row,
		prj:    prj,
	}

	for _, col := range protocolColumns {
		if v, ok := s.Attribute(col); ok {
			s.Protocol = v
			break
		}
	}

	results, err := prj.config.Path(projconf.ResultsSubdirKey)
	if err != nil {
		return nil, err
	}
	s.SampleRoot = filepath.Join(results, s.Name)

	return s, nil
}

// Attribute looks up a sheet column's value for this sample.
func (s *Sample) Attribute(name string) (string, bool) {
	for i, col := range s.cols {
		if col == name {
			return s.values[i], true
		}
	}
	return "", false
}

// SheetDict returns the sample's sheet-originated attributes in
// original column order, sample-name column first. Derived paths and
// the project back-reference are excluded.
func (s *Sample) SheetDict() ([]string, map[string]string) {
	cols := append([]string{}, s.cols...)
	vals := make(map[string]string, len(cols))
	for i, col := range cols {
		vals[col] = s.values[i]
	}
	return cols, vals
}

// Paths lists every directory this sample expects to exist: the
// project-level directories plus the sample's own results root.
func (s *Sample) Paths() []string {
	return append(s.prj.dirPaths(), s.SampleRoot)
}

// MakeSampleDirs creates every path in Paths() that does not already
// exist. Safe to call repeatedly.
func (s *Sample) MakeSampleDirs() error {
	return makeDirs(s.Paths())
}

// String identifies the sample by type and name only; the project
// back-reference is deliberately omitted.
func (s *Sample) String() string {
	if s.Protocol != "" {
		return fmt.Sprintf("Sample %q (%s)", s.Name, s.Protocol)
	}
	return fmt.Sprintf("Sample %q", s.Name)
}

// GoString is the full representation: type, name, and every sheet
// attribute. Like String, it never exposes the project reference.
func (s *Sample) GoString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sample{Name: %q", s.Name)
	for i, col := range s.cols {
		if i == 0 {
			continue
		}
		fmt.Fprintf(&b, ", %s: %q", col, s.values[i])
	}
	b.WriteString("}")
	return b.String()
}
