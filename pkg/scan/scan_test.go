package scan

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/moddeps/pkg/errors"
	"github.com/matzehuels/moddeps/pkg/manifest"
)

type entry struct {
	name    string
	content string
}

// writeJar creates a zip archive at dir/name holding the given entries.
func writeJar(t *testing.T, dir, name string, entries ...entry) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func forgeToml(id string, deps ...string) string {
	var b strings.Builder
	b.WriteString("[[mods]]\nmodId = \"" + id + "\"\n")
	for _, d := range deps {
		b.WriteString("\n[[dependencies." + id + "]]\nmodId = \"" + d + "\"\nmandatory = true\n")
	}
	return b.String()
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	writeJar(t, dir, "a-create.jar",
		entry{"META-INF/MANIFEST.MF", "Manifest-Version: 1.0\n"},
		entry{"META-INF/mods.toml", forgeToml("create", "forge", "flywheel", "minecraft")},
	)
	writeJar(t, dir, "b-flywheel.JAR", entry{"META-INF/mods.toml", forgeToml("flywheel")})
	writeJar(t, dir, "c-sodium.jar", entry{"fabric.mod.json", `{"id": "sodium", "depends": {"minecraft": "*", "fabricloader": "*"}}`})
	writeJar(t, dir, "d-resources.jar", entry{"assets/pack.mcmeta", "{}"})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a mod"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.jar"), 0755); err != nil {
		t.Fatal(err)
	}

	res, err := Dir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}

	if res.Archives != 4 {
		t.Errorf("Archives = %d, want 4", res.Archives)
	}
	if res.Records != 3 {
		t.Errorf("Records = %d, want 3", res.Records)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", res.Skipped)
	}

	g := res.Graph
	if !slices.Equal(g.IDs(), []string{"create", "flywheel", "sodium"}) {
		t.Errorf("IDs() = %v", g.IDs())
	}
	if !slices.Equal(g.Dependencies("create"), []string{"flywheel"}) {
		t.Errorf("Dependencies(create) = %v, want [flywheel]", g.Dependencies("create"))
	}
	if !slices.Equal(g.Dependencies("sodium"), []string{"fabricloader"}) {
		t.Errorf("Dependencies(sodium) = %v, want [fabricloader]", g.Dependencies("sodium"))
	}
	if r, _ := g.Record("create"); r.Source != "a-create.jar" {
		t.Errorf("Source = %q, want a-create.jar", r.Source)
	}
}

func TestDir_SkipsBadArchivesAndManifests(t *testing.T) {
	dir := t.TempDir()
	writeJar(t, dir, "broken-manifest.jar", entry{"META-INF/mods.toml", "[[mods]\nmodId ="})
	writeJar(t, dir, "good.jar", entry{"META-INF/mods.toml", forgeToml("good", "lib")})
	if err := os.WriteFile(filepath.Join(dir, "corrupt.jar"), []byte("definitely not a zip"), 0644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	res, err := Dir(context.Background(), dir, Options{Logger: log.New(&logs)})
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}

	if res.Graph.Len() != 1 || !res.Graph.Has("good") {
		t.Errorf("graph IDs = %v, want [good]", res.Graph.IDs())
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("Skipped = %v, want 2 entries", res.Skipped)
	}

	var sawParse, sawArchive bool
	for _, s := range res.Skipped {
		switch s.Archive {
		case "broken-manifest.jar":
			sawParse = errors.IsParseError(s.Err) && s.Entry == "META-INF/mods.toml"
		case "corrupt.jar":
			sawArchive = errors.Is(s.Err, errors.ErrCodeInvalidArchive)
		}
	}
	if !sawParse {
		t.Error("broken manifest not reported as ParseError")
	}
	if !sawArchive {
		t.Error("corrupt archive not reported as INVALID_ARCHIVE")
	}
	if !strings.Contains(logs.String(), "broken-manifest.jar") {
		t.Errorf("log output missing archive name:\n%s", logs.String())
	}
}

func TestDir_LaterArchiveOverwrites(t *testing.T) {
	dir := t.TempDir()
	writeJar(t, dir, "1-old.jar", entry{"META-INF/mods.toml", forgeToml("jei", "old-lib")})
	writeJar(t, dir, "2-new.jar", entry{"META-INF/mods.toml", forgeToml("jei", "new-lib")})

	res, err := Dir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(res.Graph.Dependencies("jei"), []string{"new-lib"}) {
		t.Errorf("Dependencies(jei) = %v, want [new-lib]", res.Graph.Dependencies("jei"))
	}
	if res.Records != 2 || res.Graph.Len() != 1 {
		t.Errorf("Records = %d, Len = %d, want 2, 1", res.Records, res.Graph.Len())
	}
}

func TestDir_Errors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.jar")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "nope"), file} {
		_, err := Dir(context.Background(), path, Options{})
		if !errors.Is(err, errors.ErrCodeInvalidPath) {
			t.Errorf("Dir(%s) error = %v, want INVALID_PATH", path, err)
		}
	}
}

func TestDir_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeJar(t, dir, "a.jar", entry{"META-INF/mods.toml", forgeToml("a")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Dir(ctx, dir, Options{}); err != context.Canceled {
		t.Errorf("Dir error = %v, want context.Canceled", err)
	}
}

func TestDir_Symlink(t *testing.T) {
	src := t.TempDir()
	target := writeJar(t, src, "a.jar", entry{"META-INF/mods.toml", forgeToml("a", "b")})

	dir := t.TempDir()
	if err := os.Symlink(target, filepath.Join(dir, "a.jar")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(src, "gone.jar"), filepath.Join(dir, "dangling.jar")); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "folder.jar"), 0755); err != nil {
		t.Fatal(err)
	}

	res, err := Dir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Archives != 1 {
		t.Errorf("Archives = %d, want 1", res.Archives)
	}
	if !slices.Equal(res.Graph.Dependencies("a"), []string{"b"}) {
		t.Errorf("a deps = %v, want [b]", res.Graph.Dependencies("a"))
	}
}

func TestDir_LenientManifestFields(t *testing.T) {
	dir := t.TempDir()
	writeJar(t, dir, "x.jar", entry{"META-INF/mods.toml", `
[[mods]]
modId = "x"

[[dependencies.x]]
modId = "y"
mandatory = "true"
`})

	res, err := Dir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", res.Skipped)
	}
	if !slices.Equal(res.Graph.Dependencies("x"), []string{"y"}) {
		t.Errorf("x deps = %v, want [y]", res.Graph.Dependencies("x"))
	}
}

func TestDir_CustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeJar(t, dir, "a.jar", entry{"META-INF/mods.toml", forgeToml("a")})
	writeJar(t, dir, "b.zip", entry{"META-INF/mods.toml", forgeToml("b")})

	res, err := Dir(context.Background(), dir, Options{Extensions: []string{"zip"}})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(res.Graph.IDs(), []string{"b"}) {
		t.Errorf("IDs() = %v, want [b]", res.Graph.IDs())
	}
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	parsers := manifest.Parsers(manifest.Options{})

	t.Run("no manifest", func(t *testing.T) {
		path := writeJar(t, dir, "empty.jar", entry{"data/x.json", "{}"})
		records, skips, err := Archive(path, parsers)
		if err != nil || len(records) != 0 || len(skips) != 0 {
			t.Errorf("Archive = %v, %v, %v; want no records", records, skips, err)
		}
	})

	t.Run("first matching entry per format", func(t *testing.T) {
		path := writeJar(t, dir, "nested.jar",
			entry{"META-INF/mods.toml", forgeToml("outer", "a")},
			entry{"META-INF/jarjar/inner/META-INF/mods.toml", forgeToml("inner", "b")},
		)
		records, _, err := Archive(path, parsers)
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 1 || records[0].ID != "outer" {
			t.Errorf("records = %+v, want only outer", records)
		}
	})

	t.Run("both formats in entry order", func(t *testing.T) {
		path := writeJar(t, dir, "both.jar",
			entry{"fabric.mod.json", `{"id": "shared", "depends": {"fabric-api": "*"}}`},
			entry{"META-INF/mods.toml", forgeToml("shared", "forge-lib")},
		)
		records, _, err := Archive(path, parsers)
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 2 {
			t.Fatalf("records = %+v, want 2", records)
		}
		if records[0].Format != "fabric.mod.json" || records[1].Format != "mods.toml" {
			t.Errorf("formats = %s, %s; want entry order", records[0].Format, records[1].Format)
		}
	})

	t.Run("unknown identifier", func(t *testing.T) {
		path := writeJar(t, dir, "unknown.jar", entry{"fabric.mod.json", `{"id": "unknown", "depends": {"x": "*"}}`})
		records, skips, err := Archive(path, parsers)
		if err != nil || len(records) != 0 || len(skips) != 0 {
			t.Errorf("Archive = %v, %v, %v; want nothing", records, skips, err)
		}
	})
}
