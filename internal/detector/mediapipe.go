package detector

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

// serviceIdleTimeout is how long the Python process may sit unused before
// it is shut down; the next Detect restarts it.
const serviceIdleTimeout = 30 * time.Second

// MediaPipeDetector implements Detector over a Python MediaPipe service.
// The protocol is length-prefixed JPEG frames on stdin and one JSON line
// per frame on stdout.
type MediaPipeDetector struct {
	config    Config
	mu        sync.Mutex
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	idleTimer *time.Timer
}

// NewMediaPipeDetector creates a new MediaPipe detector. The Python
// process itself starts lazily on the first Detect call.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	if serviceScript() == "" {
		return nil, fmt.Errorf("mediapipe_service.py not found")
	}
	return &MediaPipeDetector{config: config}, nil
}

// Detect sends one frame to the service and parses the hands that come
// back. A hand record with the wrong landmark count is a contract
// violation by the service; the whole frame is rejected rather than
// guessed at. Hands scoring below the confidence floor are filtered here,
// so callers only ever see hands that count as present.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureStarted(); err != nil {
		return nil, err
	}

	if err := d.writeFrame(frame); err != nil {
		return nil, err
	}

	hands, err := d.readHands()
	if err != nil {
		return nil, err
	}

	d.touchIdleTimer()
	return hands, nil
}

// Close shuts down the Python process.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown()
}

// writeFrame encodes the frame as JPEG and writes it length-prefixed
// (4 bytes big-endian) to the service.
func (d *MediaPipeDetector) writeFrame(frame *gocv.Mat) error {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()
	prefix := make([]byte, 4)
	binary.BigEndian.PutUint32(prefix, uint32(len(data)))

	if _, err := d.stdin.Write(prefix); err != nil {
		return fmt.Errorf("write length: %w", err)
	}
	if _, err := d.stdin.Write(data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// readHands parses one JSON response line into hand records, applying the
// confidence floor.
func (d *MediaPipeDetector) readHands() ([]HandLandmarks, error) {
	line, err := d.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var response struct {
		Hands []jsonHand `json:"hands"`
	}
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	hands := make([]HandLandmarks, 0, len(response.Hands))
	for _, h := range response.Hands {
		lm, err := h.toHandLandmarks()
		if err != nil {
			return nil, fmt.Errorf("reject frame: %w", err)
		}
		if lm.Score < d.config.MinConfidence {
			continue
		}
		hands = append(hands, lm)
	}
	return hands, nil
}

// serviceArgs builds the command line for the Python service, carrying the
// detector configuration across the process boundary.
func serviceArgs(script string, config Config) []string {
	return []string{
		script,
		"--max-hands", strconv.Itoa(config.MaxHands),
		"--min-detection-confidence", strconv.FormatFloat(config.MinConfidence, 'f', -1, 64),
		"--min-tracking-confidence", strconv.FormatFloat(config.MinTrackingConf, 'f', -1, 64),
	}
}

func (d *MediaPipeDetector) ensureStarted() error {
	if d.cmd != nil {
		return nil
	}

	script := serviceScript()
	if script == "" {
		return fmt.Errorf("mediapipe_service.py not found")
	}

	python := venvPython()
	if python == "" {
		python = "python3"
	}

	cmd := exec.Command(python, serviceArgs(script, d.config)...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mediapipe service: %w", err)
	}

	d.cmd = cmd
	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	return nil
}

func (d *MediaPipeDetector) shutdown() error {
	if d.cmd == nil {
		return nil
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}
	if d.stdin != nil {
		d.stdin.Close()
	}

	err := d.cmd.Wait()
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil
	return err
}

func (d *MediaPipeDetector) touchIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = time.AfterFunc(serviceIdleTimeout, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.shutdown()
	})
}

// serviceScript locates mediapipe_service.py near the binary, the working
// directory, or under ~/.airguitar.
func serviceScript() string {
	return firstExisting(searchPaths("scripts/mediapipe_service.py"))
}

// venvPython locates a virtualenv interpreter to prefer over the system
// python3.
func venvPython() string {
	return firstExisting(searchPaths("venv/bin/python"))
}

// searchPaths lists the candidate locations for a file shipped alongside
// the application: relative to the working directory, relative to the
// executable, and under the home data directory.
func searchPaths(rel string) []string {
	paths := []string{rel, filepath.Join("..", rel)}

	if execPath, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(execPath), rel))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".airguitar", rel))
	}
	return paths
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}
	return ""
}

// jsonHand is the wire shape of one hand record from the Python service.
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

func (h jsonHand) toHandLandmarks() (HandLandmarks, error) {
	lm := HandLandmarks{
		Handedness: h.Handedness,
		Score:      h.Score,
	}

	if len(h.Points) != NumLandmarks {
		return lm, fmt.Errorf("hand record has %d landmarks, want %d", len(h.Points), NumLandmarks)
	}

	for i := 0; i < NumLandmarks; i++ {
		lm.Points[i] = Point3D{
			X: h.Points[i].X,
			Y: h.Points[i].Y,
			Z: h.Points[i].Z,
		}
	}

	return lm, nil
}
