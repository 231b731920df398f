package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photo-delivery/internal/manifest"
	"photo-delivery/internal/selection"
	"photo-delivery/internal/selector"
	"photo-delivery/internal/testsupport"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTestConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "photo-delivery.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInitWritesSampleOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo-delivery.toml")

	out, err := runCLI(t, "init", "--config", path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	if _, err := runCLI(t, "init", "--config", path); err == nil {
		t.Fatal("expected second init to refuse overwrite")
	}
	if _, err := runCLI(t, "init", "--config", path, "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}

func TestPipelineCommandsRequireConfig(t *testing.T) {
	_, err := runCLI(t, "convert", "--config", filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("expected missing config error, got %v", err)
	}
}

func TestClassifyMissingSelectionIsFatal(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir, fmt.Sprintf(`
[classify]
selection_file = '%s'
source_dir = '%s'
dest_dir = '%s'
`, filepath.Join(dir, "missing.json"), dir, filepath.Join(dir, "out")))

	_, err := runCLI(t, "classify", "--config", cfg)
	if !errors.Is(err, selection.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(statErr) {
		t.Fatal("no folders should be created when the selection cannot be loaded")
	}
}

func TestClassifyEndToEnd(t *testing.T) {
	dir := t.TempDir()
	originals := filepath.Join(dir, "originals")
	dest := filepath.Join(dir, "classified")
	report := filepath.Join(dir, "report.yaml")

	testsupport.WriteFile(t, originals, "foto7_0001.jpg", []byte("one"))
	testsupport.WriteFile(t, originals, "foto7_0002.jpg", []byte("two"))
	sel := testsupport.WriteFile(t, dir, "seleccion.json", []byte(`{
		"nombre": "Megan",
		"total_fotos": 3,
		"selecciones": [{"numero_foto": 1, "ampliacion": true, "impresion": true}],
		"sugerencias_de_cambios": {"video": "Sin cambios sugeridos", "fotos": [{"photoNumber": 2, "change": "Aclarar"}]}
	}`))

	cfg := writeTestConfig(t, dir, fmt.Sprintf(`
[classify]
selection_file = '%s'
source_dir = '%s'
dest_dir = '%s'
report_path = '%s'
`, filepath.Join(dir, "other.json"), originals, dest, report))

	out, err := runCLI(t, "classify", "--config", cfg, "--selection", sel)
	if err != nil {
		t.Fatalf("classify: %v\n%s", err, out)
	}

	for _, p := range []string{
		filepath.Join(dest, "ampliacion", "foto7_0001.jpg"),
		filepath.Join(dest, "impresion", "foto7_0001.jpg"),
		filepath.Join(dest, "sin_clasificar", "foto7_0002.jpg"),
		report,
	} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s: %v", p, err)
		}
	}
	for _, want := range []string{"Name:         Megan", "CLASSIFICATION SUMMARY", "Not found:        1", "Photo #2: Aclarar"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "VIDEO CHANGE REQUESTS") {
		t.Fatalf("sentinel video notes should not be displayed:\n%s", out)
	}
}

func TestConvertWithoutSourcesCreatesDestination(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "images")
	cfg := writeTestConfig(t, dir, fmt.Sprintf(`
[convert]
source_dirs = ['%s', '%s']
dest_dir = '%s'
`, filepath.Join(dir, "session"), filepath.Join(dir, "party"), dest))

	out, err := runCLI(t, "convert", "--config", cfg)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(out, "Converted:   0") || !strings.Contains(out, "Errors:      0") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, "not found") {
		t.Fatalf("missing directories not reported:\n%s", out)
	}
	if info, err := os.Stat(dest); err != nil || !info.IsDir() {
		t.Fatalf("destination not created: %v", err)
	}
}

func TestConvertWritesManifestAndPatchesSelector(t *testing.T) {
	dir := t.TempDir()
	session := filepath.Join(dir, "session")
	dest := filepath.Join(dir, "images")
	manifestPath := filepath.Join(dir, "manifest.csv")
	script := testsupport.WriteFile(t, dir, "selector.js", []byte(selector.Placeholder+"\n"))

	testsupport.WriteJPEG(t, session, "DSC_0001.jpg")
	testsupport.WriteJPEG(t, session, "DSC_0002.JPG")

	cfg := writeTestConfig(t, dir, fmt.Sprintf(`
[convert]
source_dirs = ['%s']
dest_dir = '%s'
manifest_path = '%s'
selector_script = '%s'
`, session, dest, manifestPath, script))

	out, err := runCLI(t, "convert", "--config", cfg)
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, out)
	}
	for _, name := range []string{"foto_001.webp", "foto_002.webp"} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}

	entries, err := manifest.Read(manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	if entries[2].SourceFile != "DSC_0002.JPG" || entries[2].Output != "foto_002.webp" {
		t.Fatalf("manifest entry 2 = %+v", entries[2])
	}

	patched, err := os.ReadFile(script)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(patched), "Array.from({length: 2}") {
		t.Fatalf("selector script not patched:\n%s", patched)
	}
}

func TestConvertDryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	session := filepath.Join(dir, "session")
	dest := filepath.Join(dir, "images")
	testsupport.WriteJPEG(t, session, "a.jpg")

	cfg := writeTestConfig(t, dir, fmt.Sprintf(`
[convert]
source_dirs = ['%s']
dest_dir = '%s'
manifest_path = '%s'
`, session, dest, filepath.Join(dir, "manifest.csv")))

	out, err := runCLI(t, "convert", "--config", cfg, "--dry-run")
	if err != nil {
		t.Fatalf("convert --dry-run: %v", err)
	}
	if !strings.Contains(out, "[1/1] a.jpg -> foto_001.webp") || !strings.Contains(out, "Would convert 1 photos") {
		t.Fatalf("unexpected dry-run output:\n%s", out)
	}
	for _, p := range []string{dest, filepath.Join(dir, "manifest.csv")} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Fatalf("dry run created %s", p)
		}
	}
}
