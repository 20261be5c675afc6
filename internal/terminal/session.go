// Package terminal is the shell shown in the host window's terminal view:
// a handful of info commands over the portfolio plus a compose flow that
// relays a message to the owner.
package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/stoneinhat/dotfield/internal/portfolio"
)

// Flow is the state of the message compose flow.
type Flow uint8

const (
	Idle Flow = iota
	AwaitStart
	Composing
	Submitting
)

func (f Flow) String() string {
	switch f {
	case AwaitStart:
		return "await-start"
	case Composing:
		return "composing"
	case Submitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Kind tags an output line for styling.
type Kind uint8

const (
	Plain Kind = iota
	Echo
	Heading
	Title
	Accent
	Muted
	Success
	Failure
)

type Line struct {
	Text string
	Kind Kind
}

// Action tells the surface what to do after Enter.
type Action uint8

const (
	None Action = iota
	// Back returns to the portfolio view.
	Back
	// Submit asks the surface to relay Result.Message and report back
	// through Delivered.
	Submit
)

type Result struct {
	Action  Action
	Message string
}

const defaultWidth = 72

// Session holds the scrollback, the input line and the compose flow.
type Session struct {
	data  *portfolio.Data
	now   func() time.Time
	width int

	out     []Line
	input   []rune
	history []string
	cursor  int
	flow    Flow
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithWidth(w int) Option {
	return func(s *Session) { s.width = w }
}

func New(data *portfolio.Data, opts ...Option) *Session {
	s := &Session{
		data:   data,
		now:    time.Now,
		width:  defaultWidth,
		cursor: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.out = s.welcome()
	return s
}

func (s *Session) Lines() []Line { return s.out }

func (s *Session) Input() string { return string(s.input) }

func (s *Session) Flow() Flow { return s.flow }

// History is newest first.
func (s *Session) History() []string { return s.history }

func (s *Session) Prompt() string {
	return "user@" + s.data.Handle + ":~$"
}

// Resize sets the wrap width for future output.
func (s *Session) Resize(width int) {
	if width > 0 {
		s.width = width
	}
}

func (s *Session) Type(text string) {
	if s.flow == Submitting {
		return
	}
	s.input = append(s.input, []rune(text)...)
}

func (s *Session) Backspace() {
	if s.flow == Submitting || len(s.input) == 0 {
		return
	}
	s.input = s.input[:len(s.input)-1]
}

// Enter submits the input line.
func (s *Session) Enter() Result {
	switch s.flow {
	case AwaitStart:
		s.flow = Composing
		s.input = s.input[:0]
		s.print(Muted, "Compose mode started. Type your message and press ENTER to send. Press ESC to cancel.")
		return Result{}
	case Composing:
		msg := strings.TrimSpace(string(s.input))
		if msg == "" {
			return Result{}
		}
		s.flow = Submitting
		return Result{Action: Submit, Message: msg}
	case Submitting:
		return Result{}
	}

	line := string(s.input)
	s.input = s.input[:0]
	return s.run(line)
}

// Escape cancels the compose flow from any of its states.
func (s *Session) Escape() {
	if s.flow == Idle {
		return
	}
	s.flow = Idle
	s.input = s.input[:0]
	s.print(Muted, "Message cancelled.")
}

// Delivered reports the outcome of a Submit. The outcome is printed even if
// the flow was cancelled meanwhile, since the relay may already have taken
// the message. Only a flow still waiting on the send is reset.
func (s *Session) Delivered(err error) {
	if err != nil {
		s.print(Failure, "Failed to send. Try again.")
	} else {
		s.print(Success, "Message sent to Slack.")
	}
	if s.flow != Submitting {
		return
	}
	s.flow = Idle
	s.input = s.input[:0]
}

// HistoryUp recalls the previous command.
func (s *Session) HistoryUp() {
	if s.flow != Idle || s.cursor >= len(s.history)-1 {
		return
	}
	s.cursor++
	s.input = []rune(s.history[s.cursor])
}

// HistoryDown walks back toward the newest command and then to an empty
// line.
func (s *Session) HistoryDown() {
	if s.flow != Idle {
		return
	}
	if s.cursor > 0 {
		s.cursor--
		s.input = []rune(s.history[s.cursor])
		return
	}
	s.cursor = -1
	s.input = s.input[:0]
}

func (s *Session) print(k Kind, text string) {
	s.out = append(s.out, Line{Text: text, Kind: k})
}

func (s *Session) welcome() []Line {
	return []Line{
		{Text: fmt.Sprintf("Welcome to %s CLI (GNU/Linux 5.10.0-1-amd64 x86_64)", s.data.Handle)},
		{Text: "System information as of " + s.now().UTC().Format(time.RFC1123)},
		{},
		{Text: fmt.Sprintf("To learn more about %s's work, type 'help' in the command line.", s.data.Name), Kind: Success},
		{},
	}
}
