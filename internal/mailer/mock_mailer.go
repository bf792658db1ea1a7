package mailer

import "sync"

// SentEmail is one delivery recorded by MockMailer.
type SentEmail struct {
	Recipient string
	Template  string
	Data      any
}

// MockMailer satisfies Mailer without touching the network. Handlers send
// mail from background goroutines, so the record is guarded for concurrent
// readers polling GetSentEmails.
type MockMailer struct {
	mu   sync.Mutex
	sent []SentEmail
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, SentEmail{
		Recipient: recipient,
		Template:  templateFile,
		Data:      data,
	})

	return nil
}

// GetSentEmails returns a snapshot of the recorded deliveries.
func (m *MockMailer) GetSentEmails() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]SentEmail(nil), m.sent...)
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = nil
}
