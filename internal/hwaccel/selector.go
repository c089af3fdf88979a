package hwaccel

import (
	"context"
	"fmt"
	"sync"

	"github.com/boxkutter/media-fixer/internal/planner"
)

// Logger is the subset of the application logger the selector needs.
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Selector picks a backend and pixel format for each video encode. Device
// detection, self-test encodes, and encoder capability queries are
// injectable for tests and cached per encoder so each external probe runs
// at most once per process.
type Selector struct {
	disabled bool
	log      Logger

	devicePresent func(b Backend) bool
	selfTest      func(ctx context.Context, b Backend, encoder string) error
	queryFormats  func(ctx context.Context, encoder string) ([]string, error)

	mu        sync.Mutex
	selfTests map[string]bool
	formats   map[string][]string
}

// NewSelector returns a selector backed by real device and ffmpeg probes.
// With disabled set, Select always produces a software plan.
func NewSelector(disabled bool, log Logger) *Selector {
	return &Selector{
		disabled:      disabled,
		log:           log,
		devicePresent: devicePresent,
		selfTest:      runSelfTest,
		queryFormats:  queryEncoderFormats,
		selfTests:     make(map[string]bool),
		formats:       make(map[string][]string),
	}
}

// Select decides the backend, encoder, and pixel format for one job.
// Candidates are tried in priority order: NVENC, then VAAPI, then software.
// A backend is used only when its device is present and a tiny test encode
// with the target encoder succeeds.
func (s *Selector) Select(ctx context.Context, requestedCodec string, sourceDepth int) Plan {
	if s.disabled {
		return s.softwarePlan(requestedCodec, sourceDepth)
	}
	family := planner.FamilyOf(requestedCodec)
	if family == "" {
		return s.softwarePlan(requestedCodec, sourceDepth)
	}

	for _, b := range []Backend{BackendNVENC, BackendVAAPI} {
		encoder := encoderFor(b, family)
		if encoder == "" {
			continue
		}
		if !s.devicePresent(b) {
			s.log.Debug("hwaccel: no %s device", b)
			continue
		}
		if !s.selfTestOK(ctx, b, encoder) {
			s.log.Warn("hwaccel: %s self-test failed for %s, trying next backend", b, encoder)
			continue
		}
		pix, warn := negotiateFormat(b, s.encoderFormats(ctx, encoder), sourceDepth)
		return Plan{Backend: b, Encoder: encoder, PixelFormat: pix, Warning: warn}
	}
	return s.softwarePlan(requestedCodec, sourceDepth)
}

// softwarePlan builds the fallback plan. Sources deeper than 8 bits get an
// explicit conversion when the software encoder only accepts 8-bit input.
func (s *Selector) softwarePlan(requestedCodec string, sourceDepth int) Plan {
	encoder := planner.SoftwareEncoder(requestedCodec)
	p := Plan{Backend: BackendNone, Encoder: encoder}
	if sourceDepth > 8 && encoder == "libx264" {
		p.PixelFormat = "yuv420p"
		p.Convert = true
		p.Warning = fmt.Sprintf("%d-bit source reduced to 8-bit for %s", sourceDepth, encoder)
	}
	return p
}

// selfTestOK runs the test encode for an encoder at most once per process.
// The lock is held across the probe so concurrent first callers wait instead
// of racing duplicate encodes.
func (s *Selector) selfTestOK(ctx context.Context, b Backend, encoder string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, seen := s.selfTests[encoder]
	if !seen {
		err := s.selfTest(ctx, b, encoder)
		ok = err == nil
		if err != nil {
			s.log.Debug("hwaccel: %s self-test: %v", encoder, err)
		}
		s.selfTests[encoder] = ok
	}
	return ok
}

// encoderFormats returns the encoder's supported pixel formats, querying
// ffmpeg at most once per encoder. A failed query caches an empty list,
// which negotiation treats as 8-bit only.
func (s *Selector) encoderFormats(ctx context.Context, encoder string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmts, seen := s.formats[encoder]
	if !seen {
		var err error
		fmts, err = s.queryFormats(ctx, encoder)
		if err != nil {
			s.log.Warn("hwaccel: pixel format query failed for %s, assuming 8-bit only: %v", encoder, err)
			fmts = nil
		}
		s.formats[encoder] = fmts
	}
	return fmts
}

// tenBitFormats and eightBitFormats list candidate formats in preference
// order. VA-API surfaces want nv12/p010; NVENC accepts planar input.
var (
	tenBitFormats   = []string{"p010le", "p010", "yuv420p10le"}
	eightBitFormats = []string{"nv12", "yuv420p"}
)

// negotiateFormat picks the pixel format for a backend given the encoder's
// supported formats and the source bit depth. 12-bit sources take the best
// available of 10 or 8 bits; 10-bit sources keep 10 bits when possible and
// otherwise drop to 8 with a warning.
func negotiateFormat(b Backend, supported []string, sourceDepth int) (string, string) {
	ten := firstSupported(tenBitFormats, supported)
	eight := firstSupported(eightBitFormats, supported)
	if eight == "" {
		// Unknown capabilities: fall back to the backend's usual 8-bit
		// surface format.
		if b == BackendVAAPI {
			eight = "nv12"
		} else {
			eight = "yuv420p"
		}
	}
	switch {
	case sourceDepth >= 12:
		if ten != "" {
			return ten, fmt.Sprintf("%d-bit source reduced to 10-bit", sourceDepth)
		}
		return eight, fmt.Sprintf("%d-bit source reduced to 8-bit", sourceDepth)
	case sourceDepth >= 10:
		if ten != "" {
			return ten, ""
		}
		return eight, "10-bit source reduced to 8-bit"
	default:
		return eight, ""
	}
}

func firstSupported(want, supported []string) string {
	for _, w := range want {
		for _, s := range supported {
			if s == w {
				return w
			}
		}
	}
	return ""
}
