package helper

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// NotifierSpy is a Notifier implementation that captures notifications for testing.
type NotifierSpy struct {
	records []SpyNotification
	mu      sync.Mutex
}

// SpyNotification represents one recorded Notify call.
type SpyNotification struct {
	Recipient string
	Subject   string
	Message   string
}

// NewNotifierSpy creates a new NotifierSpy.
func NewNotifierSpy() *NotifierSpy {
	return &NotifierSpy{
		records: make([]SpyNotification, 0),
	}
}

// Notify implements the lending.Notifier interface for testing.
func (s *NotifierSpy) Notify(_ context.Context, recipient, subject, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyNotification{
		Recipient: recipient,
		Subject:   subject,
		Message:   message,
	})
}

// Notifications returns a copy of all recorded notifications in call order.
func (s *NotifierSpy) Notifications() []SpyNotification {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyNotification(nil), s.records...)
}

// Count returns the number of recorded notifications.
func (s *NotifierSpy) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Last returns the most recent notification and false if nothing was recorded.
func (s *NotifierSpy) Last() (SpyNotification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return SpyNotification{}, false
	}

	return s.records[len(s.records)-1], true
}

// Reset clears all recorded notifications.
func (s *NotifierSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// Compile-time check to ensure NotifierSpy implements the Notifier interface.
var _ lending.Notifier = (*NotifierSpy)(nil)
