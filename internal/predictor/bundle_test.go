package predictor

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入清单失败: %v", err)
	}
	return path
}

func TestLoadBundle_MissingManifest(t *testing.T) {
	if _, err := LoadBundle("/nonexistent/manifest.json", zap.NewNop()); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestLoadBundle_MalformedManifest(t *testing.T) {
	path := writeManifest(t, "{not json")
	if _, err := LoadBundle(path, zap.NewNop()); err == nil {
		t.Fatal("expected error for malformed manifest")
	}
}

func TestLoadBundle_MissingFeatureNames(t *testing.T) {
	path := writeManifest(t, `{"model_path": "model.bin", "feature_names": []}`)
	if _, err := LoadBundle(path, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty feature_names")
	}
}

func TestLoadBundle_MissingModelFile(t *testing.T) {
	path := writeManifest(t, `{"model_path": "no_such_model.bin", "feature_names": ["a", "b"]}`)
	if _, err := LoadBundle(path, zap.NewNop()); err == nil {
		t.Fatal("expected error for missing model file")
	}
}
