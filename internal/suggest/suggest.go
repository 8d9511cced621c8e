// Package suggest asks a generative model for a themed partial config. The
// service is a black box: any failure leaves the caller's config unchanged.
package suggest

import (
	"context"

	"github.com/pkg/errors"

	"github.com/iburimskiy/loopvis/internal/config"
)

var (
	ErrUnavailable = errors.New("suggestion service unavailable")
	ErrInvalid     = errors.New("invalid suggestion")
)

type StellarSuggestion struct {
	ThemeName string `json:"themeName"`
	config.StellarPatch
}

type GradientSuggestion struct {
	ThemeName string `json:"themeName"`
	config.GradientPatch
}

type StellarService interface {
	SuggestStellar(ctx context.Context, current config.Stellar) (StellarSuggestion, error)
}

type GradientService interface {
	SuggestGradient(ctx context.Context, current config.Gradient) (GradientSuggestion, error)
}

func (s StellarSuggestion) Validate() error {
	if s.ThemeName == "" || s.BgColor == nil || s.StarColor == nil || s.SpeedZ == nil {
		return errors.Wrap(ErrInvalid, "missing required field")
	}
	if err := s.StellarPatch.Validate(); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

func (s GradientSuggestion) Validate() error {
	if s.ThemeName == "" || s.Colors == nil || s.Type == nil {
		return errors.Wrap(ErrInvalid, "missing required field")
	}
	if err := s.GradientPatch.Validate(); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

// ApplyStellar merges a validated suggestion into c. On error c comes back
// as it was.
func ApplyStellar(c config.Stellar, s StellarSuggestion) (config.Stellar, error) {
	if err := s.Validate(); err != nil {
		return c, err
	}
	return s.Apply(c), nil
}

func ApplyGradient(c config.Gradient, s GradientSuggestion) (config.Gradient, error) {
	if err := s.Validate(); err != nil {
		return c, err
	}
	return s.Apply(c), nil
}
