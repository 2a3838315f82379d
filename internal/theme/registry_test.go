package theme_test

import (
	"errors"
	"testing"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/state"
	"github.com/blackwell-systems/aethernote/internal/store"
	"github.com/blackwell-systems/aethernote/internal/theme"
	"github.com/google/go-cmp/cmp"
)

func userTheme(name, accent string) theme.Theme {
	return theme.Theme{
		Name:   name,
		Styles: theme.Styles{theme.CategoryColors: {"--accent": accent}},
	}
}

func TestRegistry_Builtins(t *testing.T) {
	r := theme.NewRegistry(store.NewMem(), nil)
	all := r.All()
	if len(all) != 2 || all[0].Name != "Cyber Glow" || all[1].Name != "Soft Material" {
		t.Fatalf("All() = %v, want the two built-ins", names(all))
	}
	if got := r.ByName("no such theme").Name; got != "Cyber Glow" {
		t.Errorf("ByName fallback = %q, want Cyber Glow", got)
	}
	if got := r.ByName("Soft Material").Name; got != "Soft Material" {
		t.Errorf("ByName(Soft Material) = %q", got)
	}
}

func TestRegistry_OrderAndSystemFlag(t *testing.T) {
	r := theme.NewRegistry(store.NewMem(), nil)
	r.SetSystem([]theme.Theme{userTheme("Remote", "#111111")})
	if err := r.Import(userTheme("Mine", "#222222"), nil); err != nil {
		t.Fatalf("Import: %v", err)
	}

	all := r.All()
	want := []string{"Cyber Glow", "Soft Material", "Remote", "Mine"}
	if diff := cmp.Diff(want, names(all)); diff != "" {
		t.Errorf("All() order mismatch (-want +got):\n%s", diff)
	}
	if !all[2].IsSystem {
		t.Error("remote theme should be marked system")
	}
	if all[3].IsSystem {
		t.Error("imported theme should not be marked system")
	}
}

func TestRegistry_ImportPersists(t *testing.T) {
	kv := store.NewMem()
	r := theme.NewRegistry(kv, nil)
	imported := userTheme("Dusk", "#ff8800")
	imported.IsSystem = true
	if err := r.Import(imported, nil); err != nil {
		t.Fatalf("Import: %v", err)
	}

	again := theme.NewRegistry(kv, nil)
	if err := again.LoadUser(); err != nil {
		t.Fatalf("LoadUser: %v", err)
	}
	got, ok := again.Lookup("Dusk")
	if !ok {
		t.Fatal("imported theme not persisted")
	}
	if got.IsSystem {
		t.Error("persisted user theme came back as system")
	}
	if got.Color("--accent") != "#ff8800" {
		t.Errorf("accent = %q", got.Color("--accent"))
	}
}

func TestRegistry_ImportCollision(t *testing.T) {
	r := theme.NewRegistry(store.NewMem(), nil)
	if err := r.Import(userTheme("Dusk", "#000001"), nil); err != nil {
		t.Fatal(err)
	}

	asked := ""
	err := r.Import(userTheme("DUSK", "#000002"), func(name string) bool {
		asked = name
		return false
	})
	if !errors.Is(err, theme.ErrImportCanceled) {
		t.Fatalf("declined overwrite: err = %v, want ErrImportCanceled", err)
	}
	if asked != "DUSK" {
		t.Errorf("overwrite asked about %q", asked)
	}
	if got, _ := r.Lookup("Dusk"); got.Color("--accent") != "#000001" {
		t.Error("declined import replaced the existing theme")
	}

	if err := r.Import(userTheme("DUSK", "#000003"), func(string) bool { return true }); err != nil {
		t.Fatalf("accepted overwrite: %v", err)
	}
	users := r.User()
	if len(users) != 1 || users[0].Name != "DUSK" || users[0].Color("--accent") != "#000003" {
		t.Errorf("after overwrite users = %+v", users)
	}
}

func TestRegistry_Delete(t *testing.T) {
	r := theme.NewRegistry(store.NewMem(), nil)
	_ = r.Import(userTheme("Dusk", "#000001"), nil)

	if err := r.Delete("Cyber Glow"); !errors.Is(err, theme.ErrSystemTheme) {
		t.Errorf("Delete(builtin) = %v, want ErrSystemTheme", err)
	}
	if err := r.Delete("missing"); !errors.Is(err, theme.ErrNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrNotFound", err)
	}
	if err := r.Delete("Dusk"); err != nil {
		t.Fatalf("Delete(Dusk): %v", err)
	}
	if _, ok := r.Lookup("Dusk"); ok {
		t.Error("theme still present after Delete")
	}
}

func TestRegistry_LoadUserCorrupt(t *testing.T) {
	kv := store.NewMem()
	_ = kv.Put(store.KeyThemes, []byte("not json"))
	r := theme.NewRegistry(kv, nil)
	if err := r.LoadUser(); err != nil {
		t.Fatalf("LoadUser on corrupt blob: %v", err)
	}
	if len(r.User()) != 0 {
		t.Error("corrupt blob should yield no user themes")
	}
}

func TestParseImport(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", `{"name":"Dusk","styles":{"colors":{"--accent":"#fff"}}}`, false},
		{"system flag ignored", `{"name":"Dusk","isSystem":true,"styles":{}}`, false},
		{"missing name", `{"styles":{}}`, true},
		{"blank name", `{"name":"  ","styles":{}}`, true},
		{"missing styles", `{"name":"Dusk"}`, true},
		{"styles not object", `{"name":"Dusk","styles":[]}`, true},
		{"not json", `name: Dusk`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := theme.ParseImport([]byte(tt.in))
			if tt.wantErr {
				if !errors.Is(err, theme.ErrInvalidTheme) {
					t.Errorf("err = %v, want ErrInvalidTheme", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if th.IsSystem {
				t.Error("parsed import marked system")
			}
		})
	}
}

func TestApply(t *testing.T) {
	c := state.New(store.NewMem(), nil)
	c.Load()
	var changed bool
	c.Subscribe(func(ch state.Change) { changed = ch.ThemeChanged })

	if err := theme.Apply(c, theme.Builtins()[1]); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := c.Snapshot().ActiveTheme; got != "Soft Material" {
		t.Errorf("ActiveTheme = %q", got)
	}
	if !changed {
		t.Error("Apply did not report a theme change")
	}
	if library.DefaultTheme != theme.Builtins()[0].Name {
		t.Error("default theme should be the first built-in")
	}
}

func names(ts []theme.Theme) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}
