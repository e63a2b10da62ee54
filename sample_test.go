package peppy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const annsFrogs = `sample_name,protocol,file
frog_1,anySampleType,frog1_data.txt
frog_2,anySampleType,frog2_data.txt
frog_3,anySampleType,frog3_data.txt
frog_4,anySampleType,frog4_data.txt
`

func frogProject(t *testing.T) *Project {
	t.Helper()
	conf := `metadata:
  sample_annotation: sample_annotation.csv
  output_dir: $HOME/hello_looper_results
  pipeline_interfaces: $HOME/pipelines/pipeline_interface.yaml
`
	p, err := New(writeProject(t, conf, "sample_annotation.csv", annsFrogs))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSampleTextExcludesProjectReference(t *testing.T) {
	p := frogProject(t)
	if p.NumSamples() == 0 {
		t.Fatal("no samples")
	}

	// Both the short and the full representation must leave out the
	// back-reference to the owning project.
	for _, s := range p.Samples() {
		for _, text := range []string{s.String(), s.GoString(), fmt.Sprintf("%v", s), fmt.Sprintf("%#v", s)} {
			if strings.Contains(text, "prj") || strings.Contains(text, "Project") {
				t.Errorf("representation leaks project reference: %q", text)
			}
			if strings.Contains(text, "project_config.yaml") {
				t.Errorf("representation leaks config path: %q", text)
			}
		}
	}
}

func TestSampleTextIncludesTypeAndName(t *testing.T) {
	p := frogProject(t)
	s := p.Samples()[0]

	out := s.String()
	if !strings.Contains(out, "Sample") {
		t.Errorf("type identity missing: %q", out)
	}
	if !strings.Contains(out, "frog_1") {
		t.Errorf("sample name missing: %q", out)
	}
}

func TestSheetDictOrderAndExclusions(t *testing.T) {
	p := frogProject(t)
	s := p.Samples()[0]

	cols, vals := s.SheetDict()

	if cols[0] != "sample_name" {
		t.Errorf("first key = %q", cols[0])
	}
	wantCols := []string{"sample_name", "protocol", "file"}
	if len(cols) != len(wantCols) {
		t.Fatalf("keys: %v", cols)
	}
	for i, c := range wantCols {
		if cols[i] != c {
			t.Errorf("key %d = %q, want %q", i, cols[i], c)
		}
	}

	if vals["sample_name"] != "frog_1" || vals["file"] != "frog1_data.txt" {
		t.Errorf("values: %v", vals)
	}

	// Derived attributes stay out of the sheet view.
	for _, derived := range []string{"SampleRoot", "sample_root", "prj"} {
		if _, ok := vals[derived]; ok {
			t.Errorf("derived attribute %q leaked into sheet dict", derived)
		}
	}
}

func TestSampleAttributeLookup(t *testing.T) {
	p := frogProject(t)
	s := p.Samples()[2]

	if v, ok := s.Attribute("file"); !ok || v != "frog3_data.txt" {
		t.Errorf("file = %q, %v", v, ok)
	}
	if _, ok := s.Attribute("nonexistent"); ok {
		t.Error("lookup of missing column succeeded")
	}
}

func TestSampleOutputPathsExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := frogProject(t)
	s := p.Samples()[0]

	want := filepath.Join(home, "hello_looper_results")
	if !strings.HasPrefix(s.SampleRoot, want) {
		t.Errorf("SampleRoot = %q, want prefix %q", s.SampleRoot, want)
	}
}

func TestSampleDirsCreatedOnDemand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := frogProject(t)
	s := p.Samples()[0]

	if err := s.MakeSampleDirs(); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(s.SampleRoot); err != nil || !fi.IsDir() {
		t.Errorf("sample root not created: %v", err)
	}
	// Repeat is a no-op.
	if err := s.MakeSampleDirs(); err != nil {
		t.Errorf("second MakeSampleDirs failed: %v", err)
	}
}
