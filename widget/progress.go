package widget

import (
	"fmt"

	"github.com/dasdy/monoframe/bitmap"
	"github.com/dasdy/monoframe/model"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ProgressWidget is a bar filled from the left in proportion to its percent.
type ProgressWidget struct {
	cache

	width   int
	height  int
	percent float64
}

func NewProgressWidget(width, height int) (*ProgressWidget, error) {
	b, err := bitmap.New(width, height)
	if err != nil {
		return nil, err
	}

	w := &ProgressWidget{width: width, height: height}
	w.bmp = b

	return w, nil
}

func (w *ProgressWidget) Percent() float64 {
	return w.percent
}

// checkPercent also rejects NaN, which fails every comparison.
func checkPercent(p float64) error {
	if !(p >= 0 && p <= 1) {
		return fmt.Errorf("percent %v must be between 0.0 and 1.0: %w", p, model.ErrOutOfRange)
	}

	return nil
}

// SetPercent sets the filled fraction. Values outside [0, 1] are rejected.
func (w *ProgressWidget) SetPercent(p float64) error {
	if err := checkPercent(p); err != nil {
		return err
	}

	w.percent = p
	w.Invalidate()

	return nil
}

func (w *ProgressWidget) Prepare() error {
	w.bmp.ClearAll()
	w.bmp.FillRect(0, 0, int(float64(w.width)*w.percent), w.height, true)
	w.store(w.bmp)

	return nil
}

func (w *ProgressWidget) Bitmap() (*bitmap.Bitmap, error) {
	return w.get(w.Prepare)
}

// ProgressTween moves a ProgressWidget towards a target percent over time.
// Call Update with the elapsed seconds until Done is set.
type ProgressTween struct {
	tween  *gween.Tween
	widget *ProgressWidget
	Done   bool
}

// Animate returns a tween from the current percent to `to` lasting duration
// seconds. fn may be nil for linear motion.
func (w *ProgressWidget) Animate(to float64, duration float32, fn ease.TweenFunc) (*ProgressTween, error) {
	if err := checkPercent(to); err != nil {
		return nil, err
	}

	if fn == nil {
		fn = ease.Linear
	}

	return &ProgressTween{
		tween:  gween.New(float32(w.percent), float32(to), duration, fn),
		widget: w,
	}, nil
}

// Update advances the tween by dt seconds and applies the value.
func (t *ProgressTween) Update(dt float32) error {
	if t.Done {
		return nil
	}

	val, finished := t.tween.Update(dt)
	t.Done = finished

	// Easing functions may overshoot the end points.
	return t.widget.SetPercent(min(max(float64(val), 0), 1))
}
