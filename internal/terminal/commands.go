package terminal

import (
	"strings"
	"time"

	"github.com/stoneinhat/dotfield/internal/portfolio"
)

type command struct {
	name string
	help string
	run  func(s *Session) Result
}

var commands []command

func init() {
	commands = []command{
		{"about", "Display a summary about the owner.", section(portfolio.SectionAbout)},
		{"skills", "List technical skills.", section(portfolio.SectionSkills)},
		{"experience", "Show work experience.", section(portfolio.SectionExperience)},
		{"projects", "View personal and professional projects.", section(portfolio.SectionProjects)},
		{"education", "Display educational background.", section(portfolio.SectionEducation)},
		{"contact", "Show contact information.", section(portfolio.SectionContact)},
		{"resume", "Get a link to the resume.", resume},
		{"whoami", "Displays the current user.", whoami},
		{"date", "Shows the current date.", date},
		{"clear", "Clear the terminal screen.", clearScreen},
		{"back", "Go back to the portfolio view.", back},
		{"sudo", "Request superuser privileges.", sudo},
		{"message", "Send a Slack message to the owner.", message},
		{"help", "Show this list.", help},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// Commands lists every command name in help order.
func Commands() []string {
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.name)
	}
	return names
}

func (s *Session) run(line string) Result {
	name := strings.ToLower(strings.TrimSpace(line))
	if name == "" {
		return Result{}
	}
	s.history = append([]string{name}, s.history...)
	s.cursor = -1

	c, ok := lookup(name)
	if !ok {
		s.print(Echo, s.Prompt()+" "+name)
		s.print(Plain, "bash: command not found: "+name)
		return Result{}
	}
	if name != "clear" {
		s.print(Echo, s.Prompt()+" "+name)
	}
	return c.run(s)
}

func section(id string) func(*Session) Result {
	return func(s *Session) Result {
		lines, _ := s.data.Render(id, s.width)
		for _, l := range lines {
			s.print(kindOf(l.Style), l.Text)
		}
		return Result{}
	}
}

func kindOf(st portfolio.Style) Kind {
	switch st {
	case portfolio.Heading:
		return Heading
	case portfolio.Title:
		return Title
	case portfolio.Accent:
		return Accent
	case portfolio.Muted:
		return Muted
	default:
		return Plain
	}
}

func help(s *Session) Result {
	s.print(Heading, "Available commands:")
	for _, c := range commands {
		if c.name == "help" {
			continue
		}
		s.print(Plain, "  "+padRight(c.name, 11)+"- "+c.help)
	}
	return Result{}
}

func resume(s *Session) Result {
	if s.data.Resume == "" {
		s.print(Muted, "No resume on file.")
		return Result{}
	}
	s.print(Plain, "Find the resume at:")
	s.print(Accent, s.data.Resume)
	return Result{}
}

func whoami(s *Session) Result {
	s.print(Plain, "guest")
	return Result{}
}

func date(s *Session) Result {
	s.print(Plain, s.now().Format(time.UnixDate))
	return Result{}
}

func clearScreen(s *Session) Result {
	s.out = s.welcome()
	return Result{}
}

func back(s *Session) Result {
	s.print(Plain, "Navigating back to the portfolio view...")
	return Result{Action: Back}
}

func sudo(s *Session) Result {
	s.print(Failure, "user is not in the sudoers file. This incident will be reported.")
	return Result{}
}

func message(s *Session) Result {
	s.flow = AwaitStart
	s.print(Plain, "Please press ENTER to begin a message via Slack. Include your email in your message, then press ENTER again to send. Press ESC if you'd rather not.")
	return Result{}
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
