package pairscmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/icefront-lab/calvingpairs/internal/config"
	"github.com/icefront-lab/calvingpairs/internal/export"
	"github.com/icefront-lab/calvingpairs/internal/pairing"
)

const threeFrames = `<?xml version="1.0" encoding="utf-8"?>
<annotations>
  <version>1.1</version>
  <image id="0" name="F1.jpg"/>
  <image id="1" name="F2.jpg">
    <tag label="Usability"><attribute name="Quality">usable</attribute></tag>
    <box label="Calving" xtl="0" ytl="0" xbr="60" ybr="60"/>
  </image>
  <image id="2" name="F3.jpg">
    <tag label="Usability"><attribute name="Quality">usable</attribute></tag>
  </image>
  <image id="3" name="F4.jpg">
    <tag label="Usability"><attribute name="Quality">unusable</attribute></tag>
  </image>
</annotations>
`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "annotations.xml")
	if err := os.WriteFile(path, []byte(threeFrames), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	cfg := config.Default()
	cfg.FileName = path
	cfg.OutputDir = filepath.Join(dir, "out")
	return cfg
}

func TestBuildSummary(t *testing.T) {
	cfg := testConfig(t)
	records, err := loadRecords(cfg)
	if err != nil {
		t.Fatalf("loadRecords failed: %v", err)
	}

	report := buildSummary(records, cfg)

	if report.CalvingFrames != 1 {
		t.Errorf("Expected 1 calving frame, got %d", report.CalvingFrames)
	}
	if report.NoCalvingPairs != 1 {
		t.Errorf("Expected 1 No calving pair, got %d", report.NoCalvingPairs)
	}
	if report.AugmentedPairs != 2 {
		t.Errorf("Expected 2 augmented pairs, got %d", report.AugmentedPairs)
	}
	if diff := cmp.Diff([]float64{3600}, report.TestCalvingAreas); diff != "" {
		t.Errorf("test calving areas mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSummaryKeepsUnusable(t *testing.T) {
	cfg := testConfig(t)
	cfg.UsableOnly = false
	records, err := loadRecords(cfg)
	if err != nil {
		t.Fatalf("loadRecords failed: %v", err)
	}

	report := buildSummary(records, cfg)
	if report.NoCalvingPairs != 2 {
		t.Errorf("Expected 2 No calving pairs with unusable frames kept, got %d", report.NoCalvingPairs)
	}
}

func TestExecuteSummaryMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.FileName = "/nonexistent/annotations.xml"

	var out bytes.Buffer
	if err := executeSummary(&out, cfg); err == nil {
		t.Error("Expected error for missing annotation file, got nil")
	}
}

func TestExecuteInspect(t *testing.T) {
	cfg := testConfig(t)

	var out bytes.Buffer
	if err := executeInspect(&out, cfg, 0); err != nil {
		t.Fatalf("executeInspect failed: %v", err)
	}

	for _, want := range []string{"Loaded 4 frames", "F2.jpg  Calving  usability=usable  area=3600", "Unlabeled:  1", "Unusable:   1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestExecuteExport(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = export.FormatJSONL

	var out bytes.Buffer
	manifest, err := executeExport(&out, cfg, false)
	if err != nil {
		t.Fatalf("executeExport failed: %v", err)
	}

	if diff := cmp.Diff([]string{"train.jsonl", "test.jsonl"}, manifest.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	if manifest.Frames != 4 || manifest.Pairs.Total != 2 {
		t.Errorf("Expected 4 frames and 2 pairs, got %d and %d", manifest.Frames, manifest.Pairs.Total)
	}

	train, err := export.ReadPairs(filepath.Join(cfg.OutputDir, "train.jsonl"))
	if err != nil {
		t.Fatalf("ReadPairs failed: %v", err)
	}
	test, err := export.ReadPairs(filepath.Join(cfg.OutputDir, "test.jsonl"))
	if err != nil {
		t.Fatalf("ReadPairs failed: %v", err)
	}
	if len(train) != 1 || len(test) != 1 {
		t.Errorf("Expected 1/1 split, got %d/%d", len(train), len(test))
	}

	loaded, err := export.ReadManifest(cfg.OutputDir)
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if loaded.RunID != manifest.RunID {
		t.Errorf("Expected run id %s, got %s", manifest.RunID, loaded.RunID)
	}
}

func TestExecuteExportAugmented(t *testing.T) {
	cfg := testConfig(t)
	cfg.TrainFraction = 1

	var out bytes.Buffer
	manifest, err := executeExport(&out, cfg, true)
	if err != nil {
		t.Fatalf("executeExport failed: %v", err)
	}
	if !manifest.Config.Augmented {
		t.Error("Expected manifest to record augmentation")
	}

	train, err := export.ReadPairs(filepath.Join(cfg.OutputDir, "train.parquet"))
	if err != nil {
		t.Fatalf("ReadPairs failed: %v", err)
	}
	if got := pairing.Summarize(train); got.Calving != 1 || got.NoCalving != 1 || got.Area.Count != 0 {
		t.Errorf("Expected one synthetic calving pair without area, got %+v", got)
	}
}

func TestReportCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.csv")
	a := 3600.0
	pairs := []pairing.Pair{
		{Before: "F1.jpg", After: "F2.jpg", Label: pairing.Calving, Area: &a},
		{Before: "F2.jpg", After: "F3.jpg", Label: pairing.NoCalving},
	}
	if err := export.WritePairs(path, pairs); err != nil {
		t.Fatalf("WritePairs failed: %v", err)
	}

	cmd := NewReportCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--pairs", path, "--format", "json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("report failed: %v", err)
	}

	var summary pairing.Summary
	if err := json.Unmarshal(out.Bytes(), &summary); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if summary.Calving != 1 || summary.NoCalving != 1 || summary.Area.Mean != 3600 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
}

func TestReportUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.jsonl")
	if err := export.WritePairs(path, nil); err != nil {
		t.Fatalf("WritePairs failed: %v", err)
	}

	var out bytes.Buffer
	if err := executeReport(&out, path, "xml"); err == nil {
		t.Error("Expected error for unsupported report format, got nil")
	}
}

func TestSummaryCmdFlagsOverrideConfigFile(t *testing.T) {
	cfg := testConfig(t)
	configPath := filepath.Join(t.TempDir(), "calvingpairs.yaml")
	if err := os.WriteFile(configPath, []byte("file_name: /nonexistent.xml\nusable_only: false\n"), 0644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	cmd := NewSummaryCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", configPath, "--file", cfg.FileName})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if !strings.Contains(out.String(), "No Calving Pairs:   2") {
		t.Errorf("Expected file's usable_only=false with flag's file, got:\n%s", out.String())
	}
}

func TestExportCmdZeroTrainFraction(t *testing.T) {
	cfg := testConfig(t)

	cmd := NewExportCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", cfg.FileName, "--output", cfg.OutputDir, "--format", "jsonl", "--train-fraction", "0"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if !strings.Contains(out.String(), "Wrote 0 train and 2 test pairs") {
		t.Errorf("Expected every pair in test, got:\n%s", out.String())
	}

	train, err := export.ReadPairs(filepath.Join(cfg.OutputDir, "train.jsonl"))
	if err != nil {
		t.Fatalf("ReadPairs failed: %v", err)
	}
	test, err := export.ReadPairs(filepath.Join(cfg.OutputDir, "test.jsonl"))
	if err != nil {
		t.Fatalf("ReadPairs failed: %v", err)
	}
	if len(train) != 0 || len(test) != 2 {
		t.Errorf("Expected 0/2 split, got %d/%d", len(train), len(test))
	}

	manifest, err := export.ReadManifest(cfg.OutputDir)
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if manifest.Config.TrainFraction != 0 {
		t.Errorf("Expected manifest train fraction 0, got %v", manifest.Config.TrainFraction)
	}
}

func TestSummaryCmdZeroTrainFraction(t *testing.T) {
	cfg := testConfig(t)

	cmd := NewSummaryCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", cfg.FileName, "--train-fraction", "0"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if !strings.Contains(out.String(), "Test Calving Areas: [3600]") {
		t.Errorf("Expected the calving pair in test, got:\n%s", out.String())
	}
}
