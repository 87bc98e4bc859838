package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ops.cue")
	err := os.WriteFile(path, []byte(`
ops: [
	{name: "conv", inputs: 3, outputs: 1},
	{name: "split", inputs: 1, outputs: 3},
]
`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	specs, err := LoadOps(NewOpsLoader([]string{path}))
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].Name != "conv" || specs[0].NumInputs != 3 || specs[0].NumOutputs != 1 {
		t.Fatalf("unexpected spec: %+v", specs[0])
	}
	if specs[1].Name != "split" || specs[1].NumOutputs != 3 {
		t.Fatalf("unexpected spec: %+v", specs[1])
	}
}

func TestLoadOpsSchemaViolation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.cue")
	err := os.WriteFile(path, []byte(`
ops: [
	{name: "conv", inputs: "three", outputs: 1},
]
`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := LoadOps(NewOpsLoader([]string{path})); err == nil {
		t.Fatal("expected schema violation")
	}
}

func TestLoadOpsNoFiles(t *testing.T) {
	specs, err := LoadOps(NewOpsLoader(nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 0 {
		t.Fatalf("expected no specs, got %v", specs)
	}
}
