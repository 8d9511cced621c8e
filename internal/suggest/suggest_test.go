package suggest

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/iburimskiy/loopvis/internal/config"
)

type fakeStellar struct {
	out StellarSuggestion
	err error
}

func (f fakeStellar) SuggestStellar(context.Context, config.Stellar) (StellarSuggestion, error) {
	return f.out, f.err
}

func ptr[T any](v T) *T { return &v }

func wait[T any](t *testing.T, p *Pending[T]) Outcome[T] {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := p.Wait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func runStellar(t *testing.T, svc StellarService, c config.Stellar) (config.Stellar, error) {
	t.Helper()
	p := NewPending[StellarSuggestion]()
	defer p.Close()
	if !p.Start(time.Second, func(ctx context.Context) (StellarSuggestion, error) {
		return svc.SuggestStellar(ctx, c)
	}) {
		t.Fatal("Expected request to start")
	}
	if !p.Loading() {
		t.Error("Expected loading while in flight")
	}
	out := wait(t, p)
	if p.Loading() {
		t.Error("Expected loading cleared after the outcome")
	}
	if out.Err != nil {
		return c, out.Err
	}
	return ApplyStellar(c, out.Value)
}

func TestFailedSuggestionLeavesConfig(t *testing.T) {
	before := config.DefaultStellar()
	after, err := runStellar(t, fakeStellar{err: errors.Wrap(ErrUnavailable, "offline")}, before)
	if errors.Cause(err) != ErrUnavailable {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("Expected config unchanged after a failed suggestion")
	}
}

func TestInvalidSuggestionLeavesConfig(t *testing.T) {
	before := config.DefaultStellar()
	bad := StellarSuggestion{
		ThemeName: "Broken",
		StellarPatch: config.StellarPatch{
			BgColor:   ptr("not a colour"),
			StarColor: ptr("#ffffff"),
			SpeedZ:    ptr(90.0),
		},
	}
	after, err := runStellar(t, fakeStellar{out: bad}, before)
	if errors.Cause(err) != ErrInvalid {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("Expected config unchanged after an invalid suggestion")
	}
}

func TestSuggestionApplied(t *testing.T) {
	before := config.DefaultStellar()
	good := StellarSuggestion{
		ThemeName: "Cold Fusion",
		StellarPatch: config.StellarPatch{
			BgColor:   ptr("#000814"),
			StarColor: ptr("#caf0f8"),
			SpeedZ:    ptr(120.0),
		},
	}
	after, err := runStellar(t, fakeStellar{out: good}, before)
	if err != nil {
		t.Fatal(err)
	}
	if after.BgColor != "#000814" || after.SpeedZ != 120 || after.TrailLength != before.TrailLength {
		t.Errorf("unexpected merged config %+v", after)
	}
}

func TestPendingSingleFlight(t *testing.T) {
	p := NewPending[int]()
	defer p.Close()
	release := make(chan struct{})
	p.Start(time.Second, func(context.Context) (int, error) {
		<-release
		return 7, nil
	})
	if p.Start(time.Second, func(context.Context) (int, error) { return 8, nil }) {
		t.Error("Expected second start refused while loading")
	}
	if _, ok := p.Poll(); ok {
		t.Error("Expected no outcome before the request finishes")
	}
	close(release)
	if out := wait(t, p); out.Value != 7 {
		t.Errorf("Expected 7, got %d", out.Value)
	}
}

func TestPendingRecoversPanic(t *testing.T) {
	p := NewPending[int]()
	defer p.Close()
	p.Start(time.Second, func(context.Context) (int, error) {
		panic("boom")
	})
	if out := wait(t, p); out.Err == nil {
		t.Error("Expected panic reported as an error")
	}
	if p.Loading() {
		t.Error("Expected loading cleared after a panic")
	}
}

func TestCloseCancelsRequest(t *testing.T) {
	p := NewPending[int]()
	p.Start(time.Minute, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	p.Close()
	if out := wait(t, p); !errors.Is(out.Err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", out.Err)
	}
}

func TestGradientSuggestionDecode(t *testing.T) {
	raw := `{"themeName":"Natural Dusk","colors":["#1e1b4b","#f97316","#fde68a"],"type":"RADIAL","angle":30}`
	var s GradientSuggestion
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatal(err)
	}
	c, err := ApplyGradient(config.DefaultGradient(0), s)
	if err != nil {
		t.Fatal(err)
	}
	if c.Type != config.Radial || len(c.Colors) != 3 || c.Angle != 30 {
		t.Errorf("unexpected gradient %+v", c)
	}

	s.Type = ptr("SPIRAL")
	before := config.DefaultGradient(0)
	after, err := ApplyGradient(before, s)
	if errors.Cause(err) != ErrInvalid || !reflect.DeepEqual(before, after) {
		t.Errorf("Expected unknown type rejected without change, got %v", err)
	}
}

func TestMissingKey(t *testing.T) {
	if _, err := NewGemini(context.Background(), "", ""); errors.Cause(err) != ErrUnavailable {
		t.Errorf("Expected ErrUnavailable without a key, got %v", err)
	}
}
