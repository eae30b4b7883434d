package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cfront/internal/diag"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const goodScript = `push ident
decl x int extern definition
dump ident
pop ident
`

const badScript = `push ident
decl k int intern definition
decl k double intern declaration
pop ident
`

func TestRunSingleScript(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "good.sym", goodScript)

	res, err := Run(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed || res.Bag.HasErrors() {
		t.Fatalf("good script failed: %+v", res.Bag.Items())
	}
	if res.Output == "" {
		t.Fatalf("dump produced no output")
	}
}

func TestRunMissingFile(t *testing.T) {
	res, err := Run(context.Background(), filepath.Join(t.TempDir(), "absent.sym"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Failed {
		t.Fatalf("missing file did not fail the run")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.IOLoadFileError {
			found = true
		}
	}
	if !found {
		t.Errorf("no load diagnostic, got %+v", res.Bag.Items())
	}
}

func TestRunUsesDiskCache(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "bad.sym", badScript)
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	first, err := Run(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatalf("first run reported a cache hit")
	}
	if !first.Failed || !first.Bag.HasErrors() {
		t.Fatalf("conflicting script did not fail: %+v", first.Bag.Items())
	}

	second, err := Run(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatalf("second run missed the cache")
	}
	if second.Failed != first.Failed || second.Output != first.Output {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
	if second.Bag.Len() != first.Bag.Len() {
		t.Errorf("cached diagnostics differ: %d vs %d", second.Bag.Len(), first.Bag.Len())
	}

	// Touching the content must invalidate the entry.
	writeScript(t, dir, "bad.sym", goodScript)
	third, err := Run(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Fatalf("changed content still served from cache")
	}
	if third.Failed {
		t.Fatalf("rewritten script failed: %+v", third.Bag.Items())
	}
}

func TestRunDirDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "c.sym", goodScript)
	writeScript(t, dir, "a.sym", goodScript)
	writeScript(t, dir, "b.sym", badScript)
	writeScript(t, dir, "note.txt", "not a script")

	results, err := RunDir(context.Background(), dir, Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("ran %d files, want 3", len(results))
	}
	for i, want := range []string{"a.sym", "b.sym", "c.sym"} {
		if filepath.Base(results[i].Path) != want {
			t.Errorf("result %d = %s, want %s", i, results[i].Path, want)
		}
	}
	if results[1].Failed != true || results[0].Failed || results[2].Failed {
		t.Errorf("failure flags wrong: %+v", results)
	}
}

func TestRunDirProgressCallback(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "a.sym", goodScript)
	writeScript(t, dir, "b.sym", goodScript)

	var seen []string
	opts := Options{
		Jobs: 4,
		Progress: func(res *FileResult) {
			seen = append(seen, filepath.Base(res.Path))
		},
	}
	if _, err := RunDir(context.Background(), dir, opts); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 {
		t.Fatalf("progress called %d times, want 2", len(seen))
	}
}

func TestRunDirEmpty(t *testing.T) {
	results, err := RunDir(context.Background(), t.TempDir(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if results != nil {
		t.Fatalf("empty directory produced results: %+v", results)
	}
}
