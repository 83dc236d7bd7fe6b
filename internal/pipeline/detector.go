package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"edgescout/internal/detection"
	"edgescout/internal/imaging"
	"edgescout/internal/render"
)

// ErrBusy is returned by Run when a run is already in progress. The gate
// policy is drop-duplicate: the new trigger is rejected, not queued.
var ErrBusy = errors.New("pipeline: run already in progress")

// DefaultThreshold is the gradient magnitude above which a pixel counts as
// part of the detected object.
const DefaultThreshold = 100

// State identifies the phase a detector is currently in. It exists for
// diagnostics and tests; runs transition through states in order.
type State int32

const (
	StateIdle State = iota
	StateLoading
	StateSizing
	StateProcessing
	StateOverlay
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSizing:
		return "sizing"
	case StateProcessing:
		return "processing"
	case StateOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Surface is the drawing target a detector renders onto. It is passed in at
// construction as an explicit handle; the detector never looks a surface up
// by name. render.Canvas is the production implementation.
type Surface interface {
	Resize(width, height int)
	DrawImage(img image.Image)
	Pixels() []uint8
	Size() (width, height int)
	StrokePolygon(pts []detection.Point, s render.Stroke)
}

// Archiver is optionally implemented by surfaces that can persist their
// contents to disk.
type Archiver interface {
	Save(path string) error
}

// ImageLoader resolves an image locator to a decoded image.
type ImageLoader interface {
	Load(ctx context.Context, locator string) (image.Image, error)
}

// Config carries the detector's tunables.
type Config struct {
	// Threshold for the bounding-box extraction. Zero selects
	// DefaultThreshold.
	Threshold float64

	// Stroke used for the overlay polygon. A nil color selects opaque red
	// with width 2.
	Stroke render.Stroke

	// Workers > 1 enables row-parallel gradient computation with that many
	// goroutines. Zero or one keeps it sequential.
	Workers int

	// DrawEmpty strokes the literal inverted rectangle when no pixel clears
	// the threshold, reproducing the legacy behavior. Off by default: empty
	// detections draw nothing.
	DrawEmpty bool

	// SnapshotDir, when non-empty, receives a timestamped PNG of the surface
	// after each completed overlay. Requires the surface to implement
	// Archiver; save failures are logged and otherwise ignored.
	SnapshotDir string
}

func (c *Config) setDefaults() {
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}
	if c.Stroke.Color == nil {
		c.Stroke = render.Stroke{Color: color.NRGBA{R: 255, A: 255}, Width: 2}
	}
}

// Detector owns one render surface and executes detection runs against it.
type Detector struct {
	surface Surface
	loader  ImageLoader
	cfg     Config
	logger  *log.Logger

	running atomic.Bool
	state   atomic.Int32
}

// New creates a detector drawing onto surface with images resolved through
// loader. A nil logger falls back to the default logger.
func New(surface Surface, loader ImageLoader, cfg Config, logger *log.Logger) *Detector {
	cfg.setDefaults()
	if logger == nil {
		logger = log.Default()
	}
	return &Detector{
		surface: surface,
		loader:  loader,
		cfg:     cfg,
		logger:  logger.With("component", "pipeline"),
	}
}

// State returns the phase the detector is currently in.
func (d *Detector) State() State {
	return State(d.state.Load())
}

// Run executes one full pipeline pass for the given locator and returns the
// resulting box. found is false when nothing cleared the threshold.
//
// Run returns ErrBusy if another run is active, the context's error if it is
// cancelled while waiting for the decode, and an error wrapping
// render.ErrDecodeFailure when the locator cannot be decoded. Callers that
// speak for the trigger bridge must swallow these; Serve does.
func (d *Detector) Run(ctx context.Context, locator string) (box detection.BoundingBox, found bool, err error) {
	if !d.running.CompareAndSwap(false, true) {
		return detection.BoundingBox{}, false, ErrBusy
	}
	defer func() {
		d.state.Store(int32(StateIdle))
		d.running.Store(false)
	}()

	start := time.Now()

	// Loading: decode asynchronously and suspend until completion. There is
	// no timeout; a decode that never completes holds only this run.
	d.state.Store(int32(StateLoading))
	img, err := d.load(ctx, locator)
	if err != nil {
		return detection.BoundingBox{}, false, err
	}

	// Sizing: adopt the image's natural dimensions and draw the raw frame.
	d.state.Store(int32(StateSizing))
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	d.surface.Resize(width, height)
	d.surface.DrawImage(img)

	// Processing: read back and run the three pure stages.
	d.state.Store(int32(StateProcessing))
	box, found, err = d.process(ctx, d.surface.Pixels(), width, height)
	if err != nil {
		return detection.BoundingBox{}, false, err
	}

	// Overlay: stroke the closed polygon, then archive if configured.
	d.state.Store(int32(StateOverlay))
	if found || d.cfg.DrawEmpty {
		d.surface.StrokePolygon(box.Corners(), d.cfg.Stroke)
		d.archive()
	}

	d.logger.Debug("run complete",
		"locator", locator,
		"found", found,
		"duration", time.Since(start).Round(time.Millisecond))
	return box, found, nil
}

// Serve consumes triggers until the context is cancelled or the channel is
// closed. Per-run failures are logged and swallowed: nothing is ever
// reported back toward the trigger source.
func (d *Detector) Serve(ctx context.Context, triggers <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case locator, ok := <-triggers:
			if !ok {
				return nil
			}
			_, found, err := d.Run(ctx, locator)
			switch {
			case errors.Is(err, ErrBusy):
				d.logger.Warn("trigger dropped, run in progress", "locator", locator)
			case errors.Is(err, render.ErrDecodeFailure):
				d.logger.Debug("decode failed, run abandoned", "locator", locator)
			case err != nil:
				d.logger.Error("run failed", "locator", locator, "error", err)
			case !found:
				d.logger.Debug("no detection", "locator", locator)
			}
		}
	}
}

func (d *Detector) load(ctx context.Context, locator string) (image.Image, error) {
	type result struct {
		img image.Image
		err error
	}
	done := make(chan result, 1)
	go func() {
		img, err := d.loader.Load(ctx, locator)
		done <- result{img: img, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.img, res.err
	}
}

func (d *Detector) process(ctx context.Context, pix []uint8, width, height int) (detection.BoundingBox, bool, error) {
	intensity, err := imaging.Luminance(pix, width, height)
	if err != nil {
		return detection.BoundingBox{}, false, fmt.Errorf("luminance: %w", err)
	}

	var mag []float64
	if d.cfg.Workers > 1 {
		mag, err = imaging.GradientMagnitudeParallel(ctx, intensity, width, height, d.cfg.Workers)
	} else {
		mag, err = imaging.GradientMagnitude(intensity, width, height)
	}
	if err != nil {
		return detection.BoundingBox{}, false, fmt.Errorf("gradient: %w", err)
	}

	if d.cfg.DrawEmpty {
		box, err := detection.Extract(mag, width, height, d.cfg.Threshold)
		if err != nil {
			return detection.BoundingBox{}, false, fmt.Errorf("extract: %w", err)
		}
		return box, !box.Empty(), nil
	}

	box, found, err := detection.Locate(mag, width, height, d.cfg.Threshold)
	if err != nil {
		return detection.BoundingBox{}, false, fmt.Errorf("extract: %w", err)
	}
	return box, found, nil
}

func (d *Detector) archive() {
	if d.cfg.SnapshotDir == "" {
		return
	}
	a, ok := d.surface.(Archiver)
	if !ok {
		return
	}
	path := filepath.Join(d.cfg.SnapshotDir, time.Now().Format("20060102-150405.000")+".png")
	if err := a.Save(path); err != nil {
		d.logger.Warn("snapshot save failed", "path", path, "error", err)
	}
}
