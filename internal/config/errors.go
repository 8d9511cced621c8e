package config

import "github.com/pkg/errors"

var (
	errTooFewStops = errors.New("config: fewer than 2 colour stops")
	ErrUnknownKey  = errors.New("config: unknown key")
)

func errNegative(field string) error {
	return errors.Errorf("config: %s must not be negative", field)
}

func errUnknownType(name string) error {
	return errors.Errorf("config: unknown gradient type %q", name)
}
