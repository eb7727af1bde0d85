package forecast

import (
	"errors"

	"PriceOutlook/internal/model"
)

// ErrNotTrained is returned by Predict when Train has not succeeded yet.
var ErrNotTrained = errors.New("forecast: model must be trained first")

// Model fits a canonical series and projects it forward.
type Model interface {
	Train(series *model.CanonicalSeries) error
	// Predict returns the fitted history followed by periods future records.
	Predict(periods int) (*model.ForecastTable, error)
	Name() string
}
