package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/gaugekit/pkg/cache"
	"github.com/matzehuels/gaugekit/pkg/config"
	"github.com/matzehuels/gaugekit/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func testConfig() *config.Gauge {
	min, max := 0.0, 50.0
	return &config.Gauge{
		Name:       "test",
		Background: "white",
		Scales: []config.Scale{{
			Name:              "main",
			X:                 20,
			Y:                 50,
			Length:            360,
			Minimum:           &min,
			Maximum:           &max,
			MajorTickInterval: 10,
			Indicators: []config.Indicator{
				{Name: "now", Kind: config.KindMarker, Value: 21.5},
			},
		}},
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Config: testConfig()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Background != "white" {
		t.Errorf("Background = %q, want description background", opts.Background)
	}
	if opts.Config.Width != config.DefaultWidth {
		t.Errorf("Width = %v, want default", opts.Config.Width)
	}
}

func TestOptionsErrors(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing config: got %v", err)
	}

	opts = Options{Config: testConfig(), Formats: []string{"pdf"}}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: got %v", err)
	}

	opts = Options{Config: testConfig(), Scale: MaxScale * 2}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("oversized scale: got %v", err)
	}

	cfg := testConfig()
	cfg.Scales[0].Length = -1
	opts = Options{Config: cfg}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad config: got %v", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Background: "white", Scale: 3, Detailed: true}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Scale != 0 || k.Background != "white" {
		t.Errorf("svg key opts = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 3 {
		t.Errorf("png key opts = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatDOT); !k.Detailed || k.Background != "" {
		t.Errorf("dot key opts = %+v", k)
	}
}

func TestExecuteAllFormats(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Config:  testConfig(),
		Formats: []string{FormatSVG, FormatPNG, FormatDOT, FormatJSON},
		Scale:   1,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if svg := string(res.Artifacts[FormatSVG]); !strings.Contains(svg, "<svg") || !strings.Contains(svg, "<title>test</title>") {
		t.Errorf("svg artifact malformed: %.200s", svg)
	}
	if png := res.Artifacts[FormatPNG]; !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("png artifact lacks PNG signature")
	}
	if dot := string(res.Artifacts[FormatDOT]); !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("dot artifact malformed: %.80s", dot)
	}

	var tables []ScaleTicks
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &tables); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(tables) != 1 || tables[0].Scale != "main" {
		t.Fatalf("tables = %+v", tables)
	}
	majors := 0
	for _, row := range tables[0].Ticks {
		if !row.Minor {
			majors++
			if row.Label == "" {
				t.Errorf("major tick %v has no label", row.Value)
			}
		}
	}
	if majors != 6 {
		t.Errorf("major ticks = %d, want 6", majors)
	}

	if res.Stats.Scales != 1 || res.Stats.Nodes == 0 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if len(res.CacheInfo.Hits) != 0 {
		t.Errorf("null cache reported hits: %v", res.CacheInfo.Hits)
	}
}

func TestExecuteCacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	opts.Config = testConfig()
	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.AllHit() {
		t.Fatal("first run should miss")
	}

	opts.Config = testConfig()
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.AllHit() {
		t.Errorf("second run should hit, got %+v", second.CacheInfo)
	}
	if second.Stats.Nodes != 0 {
		t.Error("cached run should skip the build")
	}
	if first.ConfigHash != second.ConfigHash {
		t.Error("config hash should be stable")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}

	opts.Config = testConfig()
	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if len(third.CacheInfo.Hits) != 0 {
		t.Errorf("refresh should bypass cache reads, got hits %v", third.CacheInfo.Hits)
	}
}

func TestExecuteCacheKeyTracksConfig(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Config: testConfig()}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	cfg := testConfig()
	cfg.Scales[0].Indicators[0].Value = 30
	res, err := r.Execute(ctx, Options{Config: cfg})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheInfo.AllHit() {
		t.Error("changed description should miss the cache")
	}
}
