package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/aethernote/internal/util"
)

func TestSHA256Bytes(t *testing.T) {
	const want = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := util.SHA256Bytes(nil); got != want {
		t.Errorf("SHA256Bytes(nil) = %q, want %q", got, want)
	}
}

func TestFingerprint(t *testing.T) {
	type note struct {
		Title string
		Tags  []string
	}
	a := util.Fingerprint(note{"x", []string{"a"}})
	b := util.Fingerprint(note{"x", []string{"a"}})
	c := util.Fingerprint(note{"x", []string{"b"}})
	if a == "" || a != b {
		t.Errorf("equal values fingerprint differently: %q vs %q", a, b)
	}
	if a == c {
		t.Error("different values share a fingerprint")
	}
	if got := util.Fingerprint(make(chan int)); got != "" {
		t.Errorf("unencodable value fingerprint = %q, want empty", got)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "sub", "dst.txt")

	if err := util.WriteFileAtomic(dst, []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile dst: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("content = %q, want %q", string(got), "hello")
	}
	if _, err := os.Stat(dst + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	if err := util.EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	fi, err := os.Stat(nested)
	if err != nil {
		t.Fatalf("Stat after EnsureDir: %v", err)
	}
	if !fi.IsDir() {
		t.Error("EnsureDir path is not a directory")
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	cases := []struct{ in, want string }{
		{"~/foo/bar", filepath.Join(home, "foo", "bar")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}
	for _, c := range cases {
		got := util.ExpandHome(c.in)
		if got != c.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
