package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/woozymasta/geocompare/internal/config"
	"github.com/woozymasta/geocompare/internal/geo"
)

const (
	gresikGeoJSON = `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[2,0],[2,2],[0,2],[0,0]]]},"properties":{"nm_kecamatan":"Manyar"}},
		{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]},"properties":{}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[4,4]},"properties":{"name":"Bungah"}}
	]}`
	lamonganGeoJSON = `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[10,20]},"properties":{}}
	]}`
)

func testConfig(t *testing.T, a, b string) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Groups[0].Path = filepath.Join(dir, "a.geojson")
	cfg.Groups[1].Path = filepath.Join(dir, "b.geojson")

	for i, contents := range []string{a, b} {
		if contents == "" {
			continue
		}
		if err := os.WriteFile(cfg.Groups[i].Path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	return cfg
}

func TestRun(t *testing.T) {
	cfg := testConfig(t, gresikGeoJSON, lamonganGeoJSON)

	r, err := Run(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var ids []string
	for _, p := range r.Points {
		ids = append(ids, p.ID)
	}
	want := []string{"Group A_1", "Group A_3", "Group B_1"}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	if r.Points[2].Group != geo.GroupB || r.Points[2].Name != "Group B 1" {
		t.Fatalf("unexpected group B point: %+v", r.Points[2])
	}

	// (1 + 4 + 10) / 3, (1 + 4 + 20) / 3
	if r.View.Longitude != 5 || r.View.Latitude != 25.0/3.0 || r.View.Zoom != config.DefaultZoom {
		t.Fatalf("unexpected view: %+v", r.View)
	}

	if !r.Groups[0].Loaded() || !r.Groups[1].Loaded() {
		t.Fatalf("expected both documents loaded")
	}
	if len(r.Groups[0].Skips) != 1 || r.Groups[0].Skips[0].Index != 2 {
		t.Fatalf("expected the LineString to be skipped, got %+v", r.Groups[0].Skips)
	}

	if len(r.Notices) != 2 {
		t.Fatalf("expected 2 notices, got %+v", r.Notices)
	}
	for _, n := range r.Notices {
		if n.Level != LevelSuccess {
			t.Fatalf("expected success notices, got %+v", r.Notices)
		}
	}
	if !strings.Contains(r.Notices[0].Message, "2 centroid points (1 features skipped)") {
		t.Fatalf("unexpected notice: %q", r.Notices[0].Message)
	}
}

func TestRunBothFilesMissing(t *testing.T) {
	cfg := testConfig(t, "", "")

	r, err := Run(cfg)
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
	if r == nil {
		t.Fatalf("expected report with notices")
	}

	wantLevels := []Level{LevelWarning, LevelWarning, LevelError}
	if len(r.Notices) != len(wantLevels) {
		t.Fatalf("expected %d notices, got %+v", len(wantLevels), r.Notices)
	}
	for i, level := range wantLevels {
		if r.Notices[i].Level != level {
			t.Fatalf("notice %d: expected %s, got %+v", i, level, r.Notices[i])
		}
	}
	if !strings.HasPrefix(r.Notices[0].Message, "File not found: ") {
		t.Fatalf("unexpected warning: %q", r.Notices[0].Message)
	}
	if len(r.Points) != 0 {
		t.Fatalf("expected no points")
	}
}

func TestRunOneGroupBroken(t *testing.T) {
	cfg := testConfig(t, `{"type":"FeatureCollection","features":[`, lamonganGeoJSON)

	r, err := Run(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if r.Groups[0].Loaded() {
		t.Fatalf("broken document must not be loaded")
	}
	if r.Notices[0].Level != LevelError || !strings.HasPrefix(r.Notices[0].Message, "Failed to process ") {
		t.Fatalf("unexpected notice: %+v", r.Notices[0])
	}
	if len(r.Points) != 1 || r.View.Longitude != 10 || r.View.Latitude != 20 {
		t.Fatalf("expected group B only, got %+v / %+v", r.Points, r.View)
	}
}

func TestRunLoadedButNoPoints(t *testing.T) {
	empty := `{"type":"FeatureCollection","features":[]}`
	cfg := testConfig(t, empty, empty)

	r, err := Run(cfg)
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
	if !r.Groups[0].Loaded() || !r.Groups[1].Loaded() {
		t.Fatalf("expected both documents loaded")
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Groups = cfg.Groups[:1]

	if _, err := Run(cfg); err == nil || errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
