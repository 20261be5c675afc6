package portfolio

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Style tags a rendered line so each surface can colour it its own way.
type Style uint8

const (
	Body Style = iota
	Heading
	Title
	Accent
	Muted
	Blank
)

type Line struct {
	Text  string
	Style Style
}

// Section ids, in page order.
const (
	SectionAbout      = "about"
	SectionSkills     = "skills"
	SectionExperience = "experience"
	SectionProjects   = "projects"
	SectionEducation  = "education"
	SectionContact    = "contact"
)

var sectionOrder = []string{
	SectionAbout,
	SectionSkills,
	SectionExperience,
	SectionProjects,
	SectionEducation,
	SectionContact,
}

var sectionTitles = map[string]string{
	SectionAbout:      "About Me",
	SectionSkills:     "Skills & Technologies",
	SectionExperience: "Work Experience",
	SectionProjects:   "Projects",
	SectionEducation:  "Education",
	SectionContact:    "Contact Information",
}

func Sections() []string {
	out := make([]string, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// Render lays out one section wrapped to width columns. It reports false for
// an unknown section.
func (d *Data) Render(section string, width int) ([]Line, bool) {
	title, ok := sectionTitles[section]
	if !ok {
		return nil, false
	}
	if width < 10 {
		width = 10
	}
	b := &builder{width: width}
	b.add(title, Heading)
	b.blank()

	switch section {
	case SectionAbout:
		b.wrap(d.About, Body)
	case SectionSkills:
		b.wrap(strings.Join(d.Skills, " · "), Accent)
	case SectionExperience:
		for i, e := range d.Experience {
			if i > 0 {
				b.blank()
			}
			b.wrap(e.Title+" @ "+e.Company, Title)
			b.add(e.Period, Muted)
			b.wrap(e.Description, Body)
		}
	case SectionProjects:
		for i, p := range d.Projects {
			if i > 0 {
				b.blank()
			}
			b.wrap(p.Title, Title)
			b.wrap(p.Description, Body)
			b.wrap("Tech: "+strings.Join(p.Technologies, ", "), Accent)
			if p.GitHub != "" {
				b.wrap(p.GitHub, Muted)
			}
		}
	case SectionEducation:
		for i, e := range d.Education {
			if i > 0 {
				b.blank()
			}
			b.wrap(e.Degree, Title)
			b.wrap(e.School, Accent)
			b.add(e.Period, Muted)
			if e.Certificates != "" {
				b.wrap(e.Certificates, Body)
			}
			b.wrap(e.Description, Body)
		}
	case SectionContact:
		b.wrap("Email:    "+d.Contact.Email, Body)
		b.wrap("Phone:    "+d.Contact.Phone, Body)
		b.wrap("Location: "+d.Contact.Location, Body)
	}
	return b.lines, true
}

// Page is the whole profile as one scrollable document.
func (d *Data) Page(width int) []Line {
	b := &builder{width: width}
	b.wrap(d.Name, Heading)
	b.wrap("Full-Stack Developer", Muted)
	b.blank()
	for _, id := range sectionOrder {
		lines, _ := d.Render(id, width)
		b.lines = append(b.lines, lines...)
		b.blank()
	}
	return b.lines
}

type builder struct {
	width int
	lines []Line
}

func (b *builder) add(text string, s Style) {
	b.lines = append(b.lines, Line{Text: text, Style: s})
}

func (b *builder) blank() {
	b.lines = append(b.lines, Line{Style: Blank})
}

func (b *builder) wrap(text string, s Style) {
	if text == "" {
		return
	}
	for _, l := range strings.Split(ansi.Wrap(text, b.width, ""), "\n") {
		b.add(strings.TrimRight(l, " "), s)
	}
}
