package tracker

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Camera capture settings. 640x480 keeps landmark inference fast enough for
// interactive cursor control.
const (
	captureWidth  = 640
	captureHeight = 480
)

// MediaPipeTracker implements Tracker by capturing camera frames with GoCV
// and running landmark inference in a Python MediaPipe subprocess. Frames are
// sent as length-prefixed JPEG over stdin; landmarks come back as one JSON
// line per frame.
type MediaPipeTracker struct {
	config  Config
	capture *gocv.VideoCapture
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  *bufio.Reader
	mu      sync.Mutex
	started bool
}

// NewMediaPipeTracker opens the camera and prepares the tracker. The Python
// process is started lazily on the first call to Next.
func NewMediaPipeTracker(config Config) (*MediaPipeTracker, error) {
	if findLandmarkScript() == "" {
		return nil, fmt.Errorf("landmark_service.py not found")
	}

	capture, err := gocv.OpenVideoCapture(config.CameraID)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", config.CameraID, err)
	}
	capture.Set(gocv.VideoCaptureFrameWidth, captureWidth)
	capture.Set(gocv.VideoCaptureFrameHeight, captureHeight)

	return &MediaPipeTracker{
		config:  config,
		capture: capture,
	}, nil
}

// Next reads one camera frame, runs landmark inference on it, and returns the
// snapshot for the first detected hand. The capture timestamp is taken when
// the frame is read, before inference, so downstream hold-duration checks see
// the time the pose actually occurred.
func (t *MediaPipeTracker) Next() (*HandSnapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureStarted(); err != nil {
		return nil, err
	}

	mat := gocv.NewMat()
	defer mat.Close()
	if ok := t.capture.Read(&mat); !ok || mat.Empty() {
		return nil, fmt.Errorf("read camera frame")
	}
	captured := time.Now()

	buf, err := gocv.IMEncode(".jpg", mat)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()
	data := buf.GetBytes()

	// Write length (4 bytes big-endian) + JPEG payload
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))
	if _, err := t.stdin.Write(length); err != nil {
		return nil, fmt.Errorf("write length: %w", err)
	}
	if _, err := t.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write frame: %w", err)
	}

	line, err := t.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var response struct {
		Hands []jsonHand `json:"hands"`
	}
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if len(response.Hands) == 0 {
		return nil, ErrNoHand
	}
	return response.Hands[0].toSnapshot(captured), nil
}

// Close shuts down the Python process and releases the camera.
func (t *MediaPipeTracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var err error
	if t.started {
		if t.stdin != nil {
			t.stdin.Close()
		}
		err = t.cmd.Wait()
		t.started = false
		t.cmd = nil
		t.stdin = nil
		t.stdout = nil
	}
	if t.capture != nil {
		if cerr := t.capture.Close(); err == nil {
			err = cerr
		}
		t.capture = nil
	}
	return err
}

func (t *MediaPipeTracker) ensureStarted() error {
	if t.started {
		return nil
	}

	scriptPath := findLandmarkScript()
	if scriptPath == "" {
		return fmt.Errorf("landmark_service.py not found")
	}

	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	t.cmd = exec.Command(pythonPath, scriptPath,
		"--max-hands", strconv.Itoa(t.config.MaxHands),
		"--detection-confidence", strconv.FormatFloat(t.config.MinDetectionConf, 'f', -1, 64),
		"--tracking-confidence", strconv.FormatFloat(t.config.MinTrackingConf, 'f', -1, 64),
	)

	stdin, err := t.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := t.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	t.cmd.Stderr = os.Stderr

	if err := t.cmd.Start(); err != nil {
		return fmt.Errorf("start landmark service: %w", err)
	}

	t.stdin = stdin
	t.stdout = bufio.NewReader(stdout)
	t.started = true
	return nil
}

func findLandmarkScript() string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/landmark_service.py",
		"../scripts/landmark_service.py",
		filepath.Join(execDir, "scripts/landmark_service.py"),
		filepath.Join(os.Getenv("HOME"), ".wision/scripts/landmark_service.py"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// findVenvPython looks for a Python interpreter in a virtual environment
// near the executable or under the user's data directory.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".wision/venv/bin/python"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// jsonHand represents the JSON structure from the Python service.
type jsonHand struct {
	Points     []jsonPoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (h jsonHand) toSnapshot(at time.Time) *HandSnapshot {
	snap := &HandSnapshot{
		Points:     make([]Point3D, len(h.Points)),
		Handedness: h.Handedness,
		Score:      h.Score,
		Timestamp:  at,
	}
	for i, p := range h.Points {
		snap.Points[i] = Point3D{X: p.X, Y: p.Y, Z: p.Z}
	}
	return snap
}
