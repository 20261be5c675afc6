package viz

// Scroll container ids reported to the scene.
const (
	ContentContainer  = "content"
	TerminalContainer = "terminal"
)

// lineHeight converts a line offset into the pixel offset a browser would
// report for the same scroll.
const lineHeight = 16

// pane is a scrollable list of pre-rendered lines.
type pane struct {
	id     string
	lines  []string
	offset int
	height int
	// follow keeps the pane pinned to the bottom while it is there.
	follow bool
}

func (p *pane) maxOffset() int {
	return max(len(p.lines)-p.height, 0)
}

func (p *pane) clamp() {
	p.offset = max(0, min(p.offset, p.maxOffset()))
}

func (p *pane) SetLines(lines []string) {
	atBottom := p.offset >= p.maxOffset()
	p.lines = lines
	if p.follow && atBottom {
		p.offset = p.maxOffset()
	}
	p.clamp()
}

func (p *pane) SetHeight(h int) {
	atBottom := p.offset >= p.maxOffset()
	p.height = max(h, 0)
	if p.follow && atBottom {
		p.offset = p.maxOffset()
	}
	p.clamp()
}

// ScrollBy moves the pane n lines and reports whether it moved.
func (p *pane) ScrollBy(n int) bool {
	prev := p.offset
	p.offset += n
	p.clamp()
	return p.offset != prev
}

// Pixels is the scroll offset in pixels.
func (p *pane) Pixels() float64 { return float64(p.offset * lineHeight) }

// Visible returns exactly height lines, padding with blanks.
func (p *pane) Visible() []string {
	out := make([]string, p.height)
	for i := range out {
		if j := p.offset + i; j < len(p.lines) {
			out[i] = p.lines[j]
		}
	}
	return out
}
