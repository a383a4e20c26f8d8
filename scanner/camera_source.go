package scanner

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"parking-gate/contract"
	"parking-gate/domain"
	gateErrors "parking-gate/errors"
)

type frame struct {
	path    string
	modTime time.Time
}

// CameraSource implements contract.Worker and contract.Decoder.
// Every image file written into dir is one camera frame. Frames are consumed
// once read; while the source is not running they are thrown away.
type CameraSource struct {
	mu      sync.Mutex
	state   domain.SourceState
	log     *slog.Logger
	dir     string
	poll    time.Duration
	decoder *QRDecoder
	handler contract.ScanHandler
}

func NewCameraSource(log *slog.Logger, dir string, poll time.Duration, decoder *QRDecoder) *CameraSource {
	return &CameraSource{
		state:   domain.SourceStopped,
		log:     log,
		dir:     dir,
		poll:    poll,
		decoder: decoder,
	}
}

// Attach wires the workflow that receives decoded texts.
func (s *CameraSource) Attach(handler contract.ScanHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
}

func (s *CameraSource) Start() {
	s.setState(domain.SourceRunning)
	s.log.Info("Camera started", "dir", s.dir)
}

func (s *CameraSource) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.SourceRunning {
		s.state = domain.SourcePaused
	}
}

func (s *CameraSource) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.SourcePaused {
		s.state = domain.SourceRunning
	}
}

func (s *CameraSource) Stop() {
	s.setState(domain.SourceStopped)
	s.log.Info("Camera stopped")
}

func (s *CameraSource) State() domain.SourceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CameraSource) setState(state domain.SourceState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Run polls the frame directory until the context is canceled.
func (s *CameraSource) Run(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Poll(ctx)
		}
	}
}

// Poll handles the frames currently waiting in the directory.
func (s *CameraSource) Poll(ctx context.Context) {
	frames, err := s.frames()
	if err != nil {
		s.log.Warn("Unable to list camera frames", "dir", s.dir, "error", err)
		return
	}

	for i, f := range frames {
		if ctx.Err() != nil {
			return
		}
		if s.State() != domain.SourceRunning {
			s.discard(frames[i:])
			return
		}

		text, err := s.decoder.DecodeFile(f.path)
		s.remove(f.path)
		if err != nil {
			if errors.Is(err, gateErrors.ErrNoQRCode) {
				s.log.Debug("QR code scan error", "frame", filepath.Base(f.path), "error", err)
			} else {
				s.log.Warn("Unreadable camera frame", "frame", filepath.Base(f.path), "error", err)
			}
			continue
		}

		s.mu.Lock()
		handler := s.handler
		s.mu.Unlock()
		if handler == nil {
			s.log.Warn("Decoded frame dropped, no workflow attached", "frame", filepath.Base(f.path))
			continue
		}

		handler.HandleScan(ctx, text)
		// Frames queued while the workflow ran were captured by a suspended camera.
		if pending, err := s.frames(); err == nil {
			s.discard(pending)
		}
		return
	}
}

func (s *CameraSource) frames() ([]frame, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var frames []frame
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".part") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		frames = append(frames, frame{path: filepath.Join(s.dir, name), modTime: info.ModTime()})
	}
	sort.Slice(frames, func(i, j int) bool {
		if frames[i].modTime.Equal(frames[j].modTime) {
			return frames[i].path < frames[j].path
		}
		return frames[i].modTime.Before(frames[j].modTime)
	})
	return frames, nil
}

func (s *CameraSource) discard(frames []frame) {
	for _, f := range frames {
		s.remove(f.path)
	}
}

func (s *CameraSource) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("Unable to remove camera frame", "frame", path, "error", err)
	}
}
