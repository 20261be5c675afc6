package portfolio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	d := Default()
	if d.Name != "Joshua Tesch" {
		t.Errorf("expected embedded name, got %q", d.Name)
	}
	if len(d.Skills) == 0 || len(d.Experience) != 3 || len(d.Projects) != 3 || len(d.Education) != 1 {
		t.Errorf("unexpected embedded profile shape: %d skills, %d jobs, %d projects, %d schools",
			len(d.Skills), len(d.Experience), len(d.Projects), len(d.Education))
	}
	if d.Contact.Email == "" {
		t.Error("expected contact email")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "me.yaml")
	if err := os.WriteFile(path, []byte("name: Ada\nskills: [Go]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Name != "Ada" || d.Handle != "portfolio" {
		t.Errorf("unexpected data: %+v", d)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	d, err = Load("")
	if err != nil || d.Name != "Joshua Tesch" {
		t.Errorf("empty path should load the embedded profile, got %v, %v", d, err)
	}
}

func TestParseRequiresName(t *testing.T) {
	if _, err := Parse([]byte("about: nobody\n")); err != ErrNoName {
		t.Errorf("expected ErrNoName, got %v", err)
	}
	if _, err := Parse([]byte("name: [unterminated")); err == nil {
		t.Error("expected parse error")
	}
}

func TestRenderWraps(t *testing.T) {
	d := Default()
	for _, id := range Sections() {
		lines, ok := d.Render(id, 40)
		if !ok {
			t.Fatalf("section %q not rendered", id)
		}
		if lines[0].Style != Heading {
			t.Errorf("section %q should open with a heading", id)
		}
		for _, l := range lines {
			if len([]rune(l.Text)) > 40 {
				t.Errorf("section %q: line wider than 40: %q", id, l.Text)
			}
		}
	}

	if _, ok := d.Render("hobbies", 40); ok {
		t.Error("unknown section should not render")
	}
}

func TestRenderContent(t *testing.T) {
	d := Default()
	lines, _ := d.Render(SectionProjects, 80)

	var all []string
	for _, l := range lines {
		all = append(all, l.Text)
	}
	joined := strings.Join(all, "\n")
	for _, p := range d.Projects {
		if !strings.Contains(joined, p.Title) {
			t.Errorf("projects section missing %q", p.Title)
		}
	}
}

func TestPageHasEverySection(t *testing.T) {
	d := Default()
	page := d.Page(60)

	headings := 0
	for _, l := range page {
		if l.Style == Heading {
			headings++
		}
	}
	if want := len(Sections()) + 1; headings != want {
		t.Errorf("expected %d headings, got %d", want, headings)
	}
}
