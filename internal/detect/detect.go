package detect

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"github.com/thoreinstein/themesnap/internal/component"
	"github.com/thoreinstein/themesnap/internal/host"
	"github.com/thoreinstein/themesnap/internal/logging"
)

// NotDetected is displayed for a Style without a summary.
const NotDetected = "not detected"

// Style is the detected state of one component.
type Style struct {
	ComponentID string
	// Summary is the active value, such as "GTK3: Nordic". Empty when no
	// method produced a result.
	Summary string
	// Paths are the component's source paths as resolved at detection time.
	Paths []string
}

// Detected reports whether a method produced a summary.
func (s Style) Detected() bool {
	return s.Summary != ""
}

// Display returns the summary or NotDetected.
func (s Style) Display() string {
	if s.Summary == "" {
		return NotDetected
	}
	return s.Summary
}

// Detect tries spec's methods in order and returns the first result. It
// never fails: every miss, parse error or unavailable tool falls through to
// the next method, and a spec with no result yields an empty Summary.
func Detect(ctx context.Context, spec *component.Spec, h *host.Host) Style {
	logger := logging.FromContext(ctx).With("component", spec.ID)

	style := Style{
		ComponentID: spec.ID,
		Paths:       spec.SourcePaths(h),
	}

	for i, m := range spec.Detectors {
		raw, ok := run(ctx, m, h)
		if !ok {
			logger.Log(ctx, logging.LevelTrace, "detector missed", "index", i, "kind", m.Kind)
			continue
		}
		summary, ok := finish(m, raw)
		if !ok {
			logger.Log(ctx, logging.LevelTrace, "detector result ignored", "index", i, "kind", m.Kind, "value", raw)
			continue
		}
		logger.Debug("detected", "index", i, "kind", m.Kind, "summary", summary)
		style.Summary = summary
		break
	}
	return style
}

// DetectAll runs Detect for every spec concurrently. Results keep the order
// of specs.
func DetectAll(ctx context.Context, specs []*component.Spec, h *host.Host) []Style {
	return iter.Map(specs, func(s **component.Spec) Style {
		return Detect(ctx, *s, h)
	})
}

// run dispatches one method. A panic inside a parser counts as a miss.
func run(ctx context.Context, m component.Method, h *host.Host) (raw string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Debug("detector panicked", "kind", m.Kind, "panic", fmt.Sprint(r))
			raw, ok = "", false
		}
	}()

	switch m.Kind {
	case component.KindSetting:
		v, err := h.QuerySetting(ctx, m.Tool, m.Schema, m.Group, m.Key)
		return v, err == nil
	case component.KindFileKey:
		return fileKey(h, m)
	case component.KindDirScan:
		return dirScan(h, m)
	case component.KindEnv:
		return env(h, m)
	case component.KindPattern:
		return pattern(h, m)
	case component.KindPresence:
		return presence(h, m)
	default:
		return "", false
	}
}

// finish applies the method's post-processing and formats the summary.
func finish(m component.Method, raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	v = strings.Trim(v, `"'`)
	v = strings.TrimSpace(v)
	if v == "" && m.Value == "" {
		return "", false
	}

	if m.Basename && v != "" {
		v = basename(v)
	}
	for _, ig := range m.Ignore {
		if strings.EqualFold(v, ig) {
			return "", false
		}
	}

	if m.Value != "" {
		v = m.Value
	}
	if m.Label == "" {
		return v, true
	}
	return m.Label + ": " + v, true
}

// basename strips directories, a file:// scheme and the extension.
func basename(v string) string {
	v = strings.TrimPrefix(v, "file://")
	v = filepath.Base(v)
	if ext := filepath.Ext(v); ext != "" && ext != v {
		v = strings.TrimSuffix(v, ext)
	}
	return v
}
