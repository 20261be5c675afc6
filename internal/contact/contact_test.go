package contact_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/stoneinhat/dotfield/internal/contact"
	"github.com/stoneinhat/dotfield/internal/storage"
)

type memoryRecorder struct {
	mu   sync.Mutex
	msgs []storage.Message
}

func (m *memoryRecorder) Record(_ context.Context, msg storage.Message) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
	return int64(len(m.msgs)), nil
}

func (m *memoryRecorder) statuses() []storage.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]storage.Status, len(m.msgs))
	for i, msg := range m.msgs {
		out[i] = msg.Status
	}
	return out
}

type fakeSlack struct {
	server   *httptest.Server
	status   int
	mu       sync.Mutex
	payloads []map[string]any
}

func newFakeSlack() *fakeSlack {
	f := &fakeSlack{status: http.StatusOK}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p map[string]any
		_ = json.NewDecoder(r.Body).Decode(&p)
		f.mu.Lock()
		f.payloads = append(f.payloads, p)
		status := f.status
		f.mu.Unlock()
		w.WriteHeader(status)
		io.WriteString(w, "ok")
	}))
	return f
}

func post(h http.Handler, body string) (int, map[string]string) {
	req := httptest.NewRequest(http.MethodPost, contact.Path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

var _ = Describe("relay route", func() {
	var (
		slack    *fakeSlack
		recorder *memoryRecorder
		router   http.Handler
	)

	BeforeEach(func() {
		slack = newFakeSlack()
		DeferCleanup(slack.server.Close)
		recorder = &memoryRecorder{}
		notifier := contact.NewSlack(slack.server.URL)
		notifier.Now = func() time.Time { return time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC) }
		router = contact.NewRouter(notifier, recorder)
	})

	It("relays a message to Slack", func() {
		code, body := post(router, `{"message":"hi, it's ada@example.com"}`)
		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(HaveKeyWithValue("message", "Message sent successfully!"))
		Expect(recorder.statuses()).To(Equal([]storage.Status{storage.StatusSent}))

		Expect(slack.payloads).To(HaveLen(1))
		p := slack.payloads[0]
		Expect(p).To(HaveKeyWithValue("text", "New Portfolio Chat Message"))

		blocks := p["blocks"].([]any)
		Expect(blocks).To(HaveLen(5))
		types := make([]string, len(blocks))
		for i, b := range blocks {
			types[i] = b.(map[string]any)["type"].(string)
		}
		Expect(types).To(Equal([]string{"header", "section", "divider", "section", "context"}))

		msg := blocks[3].(map[string]any)["text"].(map[string]any)["text"]
		Expect(msg).To(Equal("*Message:*\n```hi, it's ada@example.com```"))

		ctxText := blocks[4].(map[string]any)["elements"].([]any)[0].(map[string]any)["text"]
		Expect(ctxText).To(Equal("Received at: 6/1/2025, 2:30:00 PM"))
	})

	DescribeTable("rejects a missing message",
		func(body string) {
			code, out := post(router, body)
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(out).To(HaveKeyWithValue("error", "Missing required fields"))
			Expect(slack.payloads).To(BeEmpty())
			Expect(recorder.statuses()).To(Equal([]storage.Status{storage.StatusRejected}))
		},
		Entry("absent field", `{}`),
		Entry("empty string", `{"message":""}`),
		Entry("whitespace", `{"message":"   "}`),
	)

	It("reports an unreadable body", func() {
		code, out := post(router, `{"message":`)
		Expect(code).To(Equal(http.StatusInternalServerError))
		Expect(out).To(HaveKeyWithValue("error", "An unexpected error occurred."))
	})

	It("reports a Slack failure", func() {
		slack.status = http.StatusForbidden
		code, out := post(router, `{"message":"hello"}`)
		Expect(code).To(Equal(http.StatusInternalServerError))
		Expect(out).To(HaveKeyWithValue("error", "Failed to send message."))
		Expect(recorder.statuses()).To(Equal([]storage.Status{storage.StatusFailed}))
	})

	It("reports missing configuration", func() {
		r := contact.NewRouter(contact.NewSlack(""), recorder)
		code, out := post(r, `{"message":"hello"}`)
		Expect(code).To(Equal(http.StatusInternalServerError))
		Expect(out).To(HaveKeyWithValue("error", "Server configuration error."))

		r = contact.NewRouter(nil, nil)
		code, out = post(r, `{"message":"hello"}`)
		Expect(code).To(Equal(http.StatusInternalServerError))
		Expect(out).To(HaveKeyWithValue("error", "Server configuration error."))
	})

	It("answers health checks", func() {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))
	})
})

var _ = Describe("Client", func() {
	var (
		slack  *fakeSlack
		relay  *httptest.Server
		client *contact.Client
	)

	BeforeEach(func() {
		slack = newFakeSlack()
		DeferCleanup(slack.server.Close)
		relay = httptest.NewServer(contact.NewRouter(contact.NewSlack(slack.server.URL), nil))
		DeferCleanup(relay.Close)
		client = contact.NewClient(contact.Endpoint(relay.URL))
	})

	It("delivers through the relay", func() {
		Expect(client.Send(context.Background(), "  hello  ")).To(Succeed())
		Expect(slack.payloads).To(HaveLen(1))
	})

	It("surfaces relay errors as delivery failures", func() {
		slack.status = http.StatusInternalServerError
		err := client.Send(context.Background(), "hello")
		Expect(errors.Is(err, contact.ErrDelivery)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("Failed to send message."))
	})

	It("refuses empty messages without a round trip", func() {
		Expect(client.Send(context.Background(), " ")).To(MatchError(contact.ErrEmptyMessage))
		Expect(slack.payloads).To(BeEmpty())
	})

	It("needs an endpoint", func() {
		var nilClient *contact.Client
		Expect(nilClient.Send(context.Background(), "hi")).To(MatchError(contact.ErrNotConfigured))
		Expect(contact.NewClient("").Send(context.Background(), "hi")).To(MatchError(contact.ErrNotConfigured))
	})

	It("fails when the relay is unreachable", func() {
		relay.Close()
		err := client.Send(context.Background(), "hello")
		Expect(errors.Is(err, contact.ErrDelivery)).To(BeTrue())
	})
})

var _ = Describe("Endpoint", func() {
	DescribeTable("joins the contact path",
		func(base, want string) {
			Expect(contact.Endpoint(base)).To(Equal(want))
		},
		Entry("bare host", "http://localhost:8080", "http://localhost:8080/api/contact"),
		Entry("trailing slash", "http://localhost:8080/", "http://localhost:8080/api/contact"),
		Entry("already complete", "http://x/api/contact", "http://x/api/contact"),
		Entry("empty", "", ""),
	)
})
