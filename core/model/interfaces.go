package model

import "context"

// ParameterGetter is the interface for estimators that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the hyperparameters of the last training call as
	// they were passed to the stored procedure, keyed by procedure
	// parameter name. Nil before the first training call.
	GetParams() map[string]interface{}
}

// Describer is the interface for estimators whose fitted model can be
// rendered as text by the database engine.
type Describer interface {
	// Describe returns a human-readable description of the fitted model.
	Describe(ctx context.Context) (string, error)
}

// Dropper is the interface for estimators whose backing model tables can be
// removed from the database.
type Dropper interface {
	// DropModel removes the model from the database and resets the estimator.
	DropModel(ctx context.Context) error
}
