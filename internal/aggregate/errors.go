package aggregate

import "errors"

var (
	// ErrUnknownMetric is returned by ParseMetric.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrUnknownCalculationMode is returned by ParseCalculationMode.
	ErrUnknownCalculationMode = errors.New("unknown calculation mode")
)
