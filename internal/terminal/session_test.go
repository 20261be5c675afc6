package terminal_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/stoneinhat/dotfield/internal/portfolio"
	"github.com/stoneinhat/dotfield/internal/terminal"
)

func texts(lines []terminal.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func last(s *terminal.Session) terminal.Line {
	lines := s.Lines()
	return lines[len(lines)-1]
}

var _ = Describe("Session", func() {
	var (
		s     *terminal.Session
		clock time.Time
	)

	BeforeEach(func() {
		clock = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
		s = terminal.New(portfolio.Default(),
			terminal.WithClock(func() time.Time { return clock }),
			terminal.WithWidth(60))
	})

	enter := func(cmd string) terminal.Result {
		s.Type(cmd)
		return s.Enter()
	}

	It("greets with the welcome banner", func() {
		Expect(texts(s.Lines())).To(ContainElement(ContainSubstring("Welcome to jtesch-portfolio CLI")))
		Expect(texts(s.Lines())).To(ContainElement(ContainSubstring("Fri, 14 Mar 2025 15:09:26 UTC")))
		Expect(s.Prompt()).To(Equal("user@jtesch-portfolio:~$"))
	})

	Describe("commands", func() {
		It("trims and lower-cases input before running it", func() {
			enter("  WHOAMI  ")
			Expect(last(s).Text).To(Equal("guest"))
			Expect(s.History()).To(Equal([]string{"whoami"}))
			Expect(s.Input()).To(BeEmpty())
		})

		It("ignores blank input", func() {
			before := len(s.Lines())
			enter("   ")
			Expect(s.Lines()).To(HaveLen(before))
			Expect(s.History()).To(BeEmpty())
		})

		It("reports unknown commands", func() {
			enter("rm -rf /")
			Expect(last(s).Text).To(Equal("bash: command not found: rm -rf /"))
			Expect(s.History()).To(HaveLen(1))
		})

		It("lists every command in help", func() {
			enter("help")
			out := texts(s.Lines())
			for _, name := range terminal.Commands() {
				if name == "help" {
					continue
				}
				Expect(out).To(ContainElement(HavePrefix("  "+name)), name)
			}
		})

		It("renders portfolio sections", func() {
			enter("projects")
			Expect(texts(s.Lines())).To(ContainElement("Projects"))
			Expect(texts(s.Lines())).To(ContainElement("The Piped Peony Academy"))

			enter("contact")
			Expect(texts(s.Lines())).To(ContainElement(ContainSubstring("atreusassociates@gmail.com")))
		})

		It("prints the date from the clock", func() {
			enter("date")
			Expect(last(s).Text).To(Equal(clock.Format(time.UnixDate)))
		})

		It("refuses sudo", func() {
			enter("sudo")
			Expect(last(s).Kind).To(Equal(terminal.Failure))
		})

		It("links the resume", func() {
			enter("resume")
			Expect(last(s).Text).To(HaveSuffix(".pdf"))
		})

		It("clears back to the banner", func() {
			banner := len(s.Lines())
			enter("about")
			Expect(len(s.Lines())).To(BeNumerically(">", banner))
			enter("clear")
			Expect(s.Lines()).To(HaveLen(banner))
			Expect(s.History()).To(Equal([]string{"clear", "about"}))
		})

		It("asks to go back", func() {
			Expect(enter("back").Action).To(Equal(terminal.Back))
		})
	})

	Describe("history", func() {
		BeforeEach(func() {
			enter("about")
			enter("skills")
			enter("date")
		})

		It("walks newest first and back to an empty line", func() {
			s.HistoryUp()
			Expect(s.Input()).To(Equal("date"))
			s.HistoryUp()
			Expect(s.Input()).To(Equal("skills"))
			s.HistoryUp()
			Expect(s.Input()).To(Equal("about"))
			s.HistoryUp()
			Expect(s.Input()).To(Equal("about"))

			s.HistoryDown()
			Expect(s.Input()).To(Equal("skills"))
			s.HistoryDown()
			Expect(s.Input()).To(Equal("date"))
			s.HistoryDown()
			Expect(s.Input()).To(BeEmpty())
		})

		It("resets the cursor after running a command", func() {
			s.HistoryUp()
			s.HistoryUp()
			s.Enter()
			s.HistoryUp()
			Expect(s.Input()).To(Equal("skills"))
		})
	})

	Describe("compose flow", func() {
		It("walks idle, await, composing, submitting, idle", func() {
			enter("message")
			Expect(s.Flow()).To(Equal(terminal.AwaitStart))

			Expect(s.Enter().Action).To(Equal(terminal.None))
			Expect(s.Flow()).To(Equal(terminal.Composing))
			Expect(last(s).Text).To(HavePrefix("Compose mode started."))

			res := enter("  hello from ada@example.com  ")
			Expect(res.Action).To(Equal(terminal.Submit))
			Expect(res.Message).To(Equal("hello from ada@example.com"))
			Expect(s.Flow()).To(Equal(terminal.Submitting))

			s.Type("more")
			Expect(s.Input()).To(Equal("  hello from ada@example.com  "))
			Expect(s.Enter().Action).To(Equal(terminal.None))

			s.Delivered(nil)
			Expect(s.Flow()).To(Equal(terminal.Idle))
			Expect(last(s).Text).To(Equal("Message sent to Slack."))
			Expect(s.Input()).To(BeEmpty())
		})

		It("does not submit an empty message", func() {
			enter("message")
			s.Enter()
			Expect(enter("   ").Action).To(Equal(terminal.None))
			Expect(s.Flow()).To(Equal(terminal.Composing))
		})

		It("reports a failed delivery", func() {
			enter("message")
			s.Enter()
			enter("hi")
			s.Delivered(errors.New("boom"))
			Expect(s.Flow()).To(Equal(terminal.Idle))
			Expect(last(s)).To(Equal(terminal.Line{Text: "Failed to send. Try again.", Kind: terminal.Failure}))
		})

		DescribeTable("escape cancels from any active state",
			func(steps int) {
				enter("message")
				if steps > 0 {
					s.Enter()
				}
				if steps > 1 {
					enter("draft")
				}
				s.Escape()
				Expect(s.Flow()).To(Equal(terminal.Idle))
				Expect(last(s).Text).To(Equal("Message cancelled."))
				Expect(s.Input()).To(BeEmpty())
			},
			Entry("awaiting start", 0),
			Entry("composing", 1),
			Entry("submitting", 2),
		)

		It("keeps a new flow when a cancelled send lands late", func() {
			enter("message")
			s.Enter()
			enter("first")
			s.Escape()

			enter("message")
			s.Enter()
			s.Type("sec")

			s.Delivered(nil)
			Expect(last(s).Text).To(Equal("Message sent to Slack."))
			Expect(s.Flow()).To(Equal(terminal.Composing))
			Expect(s.Input()).To(Equal("sec"))

			s.Escape()
			enter("ab")
			s.Delivered(errors.New("boom"))
			Expect(last(s).Kind).To(Equal(terminal.Failure))
			Expect(s.Flow()).To(Equal(terminal.Idle))
		})

		It("ignores escape while idle", func() {
			before := len(s.Lines())
			s.Escape()
			Expect(s.Lines()).To(HaveLen(before))
		})

		It("does not recall history mid-flow", func() {
			enter("about")
			enter("message")
			s.HistoryUp()
			Expect(s.Input()).To(BeEmpty())
		})
	})
})
