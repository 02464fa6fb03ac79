package sink

import (
	"fmt"
	"sync"
)

// Call records one invocation of a MockSink method in a comparable string
// form, e.g. "click:left:1" or "scroll:3".
type Call string

// MockSink is a test implementation of Sink recording every call in order.
// Tests can make all calls fail to exercise sink-error paths.
type MockSink struct {
	mu    sync.Mutex
	calls []Call
	err   error
}

// NewMockSink creates an empty MockSink.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// SetError makes every subsequent action fail with err.
func (m *MockSink) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns a copy of the recorded calls in invocation order.
func (m *MockSink) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CountPrefix returns how many recorded calls start with the given prefix.
func (m *MockSink) CountPrefix(prefix string) int {
	n := 0
	for _, c := range m.Calls() {
		if len(c) >= len(prefix) && string(c[:len(prefix)]) == prefix {
			n++
		}
	}
	return n
}

func (m *MockSink) record(c Call) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.calls = append(m.calls, c)
	return nil
}

func (m *MockSink) PointerMove(x, y int) error {
	return m.record(Call(fmt.Sprintf("move:%d:%d", x, y)))
}

func (m *MockSink) PointerClick(button Button, count int) error {
	return m.record(Call(fmt.Sprintf("click:%s:%d", button, count)))
}

func (m *MockSink) Scroll(amount int) error {
	return m.record(Call(fmt.Sprintf("scroll:%d", amount)))
}

func (m *MockSink) KeyCombo(name string) error {
	return m.record(Call("key:" + name))
}

func (m *MockSink) WindowOp(name string) error {
	return m.record(Call("window:" + name))
}
