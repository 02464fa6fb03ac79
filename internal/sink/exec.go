package sink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// request is one action sent to the helper over stdin, newline-delimited
// JSON, one object per line.
type request struct {
	Op     string `json:"op"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Button string `json:"button,omitempty"`
	Count  int    `json:"count,omitempty"`
	Amount int    `json:"amount,omitempty"`
	Name   string `json:"name,omitempty"`
}

// response is the helper's reply for one request.
type response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ExecSink implements Sink by delegating every action to a long-running
// helper executable speaking newline-delimited JSON over stdin/stdout. The
// helper owns the platform input-injection mechanics; see sinks/debug for a
// reference implementation of the protocol.
type ExecSink struct {
	path    string
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  *bufio.Reader
	mu      sync.Mutex
	started bool
}

// NewExecSink creates a sink backed by the helper at path. The helper
// process is started lazily on the first action.
func NewExecSink(path string) (*ExecSink, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sink helper: %w", err)
	}
	return &ExecSink{path: path}, nil
}

// PointerMove moves the pointer to absolute screen coordinates.
func (s *ExecSink) PointerMove(x, y int) error {
	return s.send(request{Op: "pointer_move", X: x, Y: y})
}

// PointerClick presses a pointer button count times.
func (s *ExecSink) PointerClick(button Button, count int) error {
	return s.send(request{Op: "pointer_click", Button: string(button), Count: count})
}

// Scroll scrolls by amount; positive is up.
func (s *ExecSink) Scroll(amount int) error {
	return s.send(request{Op: "scroll", Amount: amount})
}

// KeyCombo sends a symbolic key or chord.
func (s *ExecSink) KeyCombo(name string) error {
	return s.send(request{Op: "key_combo", Name: name})
}

// WindowOp performs a symbolic window operation.
func (s *ExecSink) WindowOp(name string) error {
	return s.send(request{Op: "window_op", Name: name})
}

// Close shuts the helper process down.
func (s *ExecSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	if s.stdin != nil {
		s.stdin.Close()
	}
	err := s.cmd.Wait()
	s.started = false
	s.cmd = nil
	s.stdin = nil
	s.stdout = nil
	return err
}

func (s *ExecSink) send(req request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureStarted(); err != nil {
		return err
	}

	line, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	line = append(line, '\n')
	if _, err := s.stdin.Write(line); err != nil {
		return fmt.Errorf("write request: %w", err)
	}

	out, err := s.stdout.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var resp response
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("sink %s: %s", req.Op, resp.Error)
	}
	return nil
}

func (s *ExecSink) ensureStarted() error {
	if s.started {
		return nil
	}

	s.cmd = exec.Command(s.path)
	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := s.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	s.cmd.Stderr = os.Stderr

	if err := s.cmd.Start(); err != nil {
		return fmt.Errorf("start sink helper: %w", err)
	}

	s.stdin = stdin
	s.stdout = bufio.NewReader(stdout)
	s.started = true
	return nil
}
