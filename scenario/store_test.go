package scenario_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wiless/beamforming/antenna"
	"github.com/wiless/beamforming/scenario"
	"github.com/wiless/vlib"
)

func twoArrays() scenario.Scenario {
	a := antenna.SettingArray{N: 8, ESpacingFactor: 0.5, FreqHz: 2.4e9, SteeringAngle: 15}
	b := antenna.SettingArray{N: 4, ESpacingFactor: 0.45, FreqHz: 2.4e9, CurveRadius: 2.5, Rotation: 30,
		Centre: vlib.Location3D{X: 1.25, Y: -0.5}}
	s := scenario.New("pair", a, b)
	s.Description = "two arrays"
	return s
}

func TestSaveLoadAllFormats(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			st, err := scenario.NewStore(t.TempDir())
			if err != nil {
				t.Fatal(err)
			}
			st.Format = ext
			want := twoArrays()
			fname, err := st.Save(want)
			if err != nil {
				t.Fatal(err)
			}
			if filepath.Ext(fname) != ext {
				t.Errorf("saved as %s", fname)
			}
			got, err := st.Load("pair")
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("loaded %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	st, err := scenario.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cases := []scenario.Scenario{
		scenario.New("empty"),
		scenario.New("bad", antenna.SettingArray{N: 1, ESpacingFactor: 0.5, FreqHz: 1e9}),
		scenario.New("steer", antenna.SettingArray{N: 4, ESpacingFactor: 0.5, FreqHz: 1e9, SteeringAngle: 200}),
		scenario.New("???", *antenna.NewSettingArray()),
	}
	for _, s := range cases {
		if _, err := st.Save(s); !errors.Is(err, scenario.ErrValidation) {
			t.Errorf("%q: expected ErrValidation, got %v", s.Name, err)
		}
	}
	if _, err := st.Save(cases[2]); !errors.Is(err, antenna.ErrInvalidSteeringAngle) {
		t.Errorf("antenna error not wrapped: %v", err)
	}
	names, _ := st.List()
	if len(names) != 0 {
		t.Errorf("invalid scenarios written: %v", names)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"urban cell", "urban cell"},
		{"../etc/passwd", "etcpasswd"},
		{"a_b-c.json  ", "a_bcjson"},
		{"trailing   ", "trailing"},
	}
	for _, tc := range tests {
		if got := scenario.SanitizeName(tc.in); got != tc.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestListDeleteAndSeed(t *testing.T) {
	dir := t.TempDir()
	st, err := scenario.NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	written, err := st.SeedDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 3 {
		t.Fatalf("seeded %v", written)
	}
	again, err := st.SeedDefaults()
	if err != nil || len(again) != 0 {
		t.Fatalf("second seed wrote %v (%v)", again, err)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)

	names, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"5G_urban_small_cell", "medical_ultrasound_imaging", "tumor_ablation_adaptive"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for _, name := range want {
		s, err := st.Load(name)
		if err != nil {
			t.Fatal(err)
		}
		p, _ := scenario.Preset(name)
		if !reflect.DeepEqual(s, p) {
			t.Errorf("%s: loaded %+v, want %+v", name, s, p)
		}
	}

	if err := st.Delete("medical_ultrasound_imaging"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load("medical_ultrasound_imaging"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist after delete, got %v", err)
	}
	if err := st.Delete("medical_ultrasound_imaging"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("second delete: %v", err)
	}
}

func TestLegacyRecord(t *testing.T) {
	dir := t.TempDir()
	data := `{"num_elements": 16, "element_spacing": 0.4, "frequency": 28.0,
		"position": [1, 2], "curved_array": true, "curvature_radius": 12}`
	if err := os.WriteFile(filepath.Join(dir, "old.json"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	st := &scenario.Store{Dir: dir}
	s, err := st.Load("old")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "old" || len(s.Arrays) != 1 {
		t.Fatalf("unexpected scenario %+v", s)
	}
	a := s.Arrays[0]
	if a.N != 16 || a.ESpacingFactor != 0.4 || a.FreqHz != 28e9 || a.CurveRadius != 12 ||
		a.Centre.X != 1 || a.Centre.Y != 2 {
		t.Errorf("legacy conversion gave %+v", a)
	}

	linear, err := scenario.Decode([]byte("num_elements: 4\ncurved_array: false\n"), ".yaml")
	if err != nil {
		t.Fatal(err)
	}
	b := linear.Arrays[0]
	if b.N != 4 || b.ESpacingFactor != 0.5 || b.FreqHz != 1e9 || b.Kind() != antenna.LinearPhaseArray {
		t.Errorf("legacy defaults gave %+v", b)
	}
}

func TestDecodeDefaultsAndErrors(t *testing.T) {
	s, err := scenario.Decode([]byte(`
name = "partial"

[[arrays]]
elements = 12
steering_angle = -20
`), ".toml")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "partial" || len(s.Arrays) != 1 {
		t.Fatalf("unexpected scenario %+v", s)
	}
	a := s.Arrays[0]
	if a.N != 12 || a.SteeringAngle != -20 || a.ESpacingFactor != 0.5 || a.FreqHz != 1e9 {
		t.Errorf("missing fields not defaulted: %+v", a)
	}
	if err := s.Validate(); err != nil {
		t.Error(err)
	}

	if _, err := scenario.Decode([]byte(`{}`), ".xml"); !errors.Is(err, scenario.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := scenario.Decode([]byte(`{"arrays": [{"position": [1, 2, 3]}]}`), ".json"); err == nil {
		t.Error("three component position accepted")
	}
	if _, err := scenario.Decode([]byte(`{"arrays": [{"elements": 12.7}]}`), ".json"); err == nil {
		t.Error("fractional element count accepted")
	}
	if _, err := scenario.Decode([]byte("num_elements: 4.5\n"), ".yaml"); err == nil {
		t.Error("fractional legacy element count accepted")
	}
	if s, err := scenario.Decode([]byte(`{"arrays": [{"elements": 12.0}]}`), ".json"); err != nil || s.Arrays[0].N != 12 {
		t.Errorf("whole float element count: %+v %v", s, err)
	}
	if _, err := scenario.Decode([]byte(`{"arrays": [`), ".json"); err == nil {
		t.Error("broken json accepted")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, p := range scenario.Presets() {
		if err := p.Validate(); err != nil {
			t.Errorf("%s: %v", p.Name, err)
		}
	}
	p, _ := scenario.Preset("5G_urban_small_cell")
	p.Arrays[0].N = 2
	q, _ := scenario.Preset("5G_urban_small_cell")
	if q.Arrays[0].N != 16 {
		t.Error("Preset shares its arrays")
	}
	if _, ok := scenario.Preset("nope"); ok {
		t.Error("unknown preset found")
	}
}
