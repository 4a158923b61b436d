package server

import (
	"fmt"
	"image"
	"image/color"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/airguitar/internal/app"
	"github.com/ayusman/airguitar/internal/capture"
	"github.com/ayusman/airguitar/internal/gesture"
	"github.com/ayusman/airguitar/internal/strum"
)

const streamBoundary = "frame"

// streamInterval paces the preview at roughly 15 FPS; the preview never
// needs to keep up with the pipeline's active rate.
const streamInterval = 66 * time.Millisecond

var overlayColor = color.RGBA{R: 40, G: 230, B: 120}

// StreamHandler serves the camera preview as an MJPEG stream. When an app
// is attached, the held chord and last strum direction are drawn onto each
// frame so the settings page needs no separate overlay channel.
type StreamHandler struct {
	camera capture.Camera
	app    *app.App
}

// NewStreamHandler creates a StreamHandler. The app may be nil, in which
// case frames are streamed unannotated.
func NewStreamHandler(camera capture.Camera, a *app.App) *StreamHandler {
	return &StreamHandler{camera: camera, app: a}
}

// ServeHTTP streams annotated MJPEG frames until the client disconnects.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+streamBoundary)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, _ := w.(http.Flusher)

	for r.Context().Err() == nil {
		if err := h.writePart(w); err != nil {
			// Camera hiccups are retried; a dead client ends the loop
			// via the context check.
			time.Sleep(100 * time.Millisecond)
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
		time.Sleep(streamInterval)
	}
}

// writePart reads one frame, annotates it, and writes one multipart chunk.
func (h *StreamHandler) writePart(w http.ResponseWriter) error {
	frame, err := h.camera.ReadFrame()
	if err != nil {
		return err
	}
	defer frame.Close()

	h.annotate(frame)

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return err
	}
	defer buf.Close()

	if _, err := fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n",
		streamBoundary, buf.Len()); err != nil {
		return err
	}
	if _, err := w.Write(buf.GetBytes()); err != nil {
		return err
	}
	_, err = fmt.Fprint(w, "\r\n")
	return err
}

// annotate draws the pipeline state into the top-left corner of the frame.
func (h *StreamHandler) annotate(frame *gocv.Mat) {
	if h.app == nil {
		return
	}

	label := overlayLabel(h.app.HeldChord(), h.app.LastStrumDirection())
	gocv.PutText(frame, label, image.Pt(12, 28), gocv.FontHersheySimplex, 0.8, overlayColor, 2)
}

// overlayLabel renders the held chord and last strum direction as one line
// of preview text.
func overlayLabel(chord gesture.Chord, dir strum.Direction) string {
	label := "chord -"
	if chord != gesture.ChordNone {
		label = "chord " + string(chord)
	}
	if dir != strum.DirectionNone {
		label += "  strum " + string(dir)
	}
	return label
}
