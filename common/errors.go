package common

import "errors"

var (
	ErrorInvalidParameters = errors.New("invalid distribution parameters")
	ErrorInvalidBinTable   = errors.New("invalid concentration bin table")
	ErrorInvalidDose       = errors.New("invalid dose")
	ErrorInvalidCohortSize = errors.New("invalid cohort size")
	ErrorInvalidTrialCount = errors.New("invalid trial count")
	ErrorInvalidQuantile   = errors.New("invalid quantile probability")
	ErrorInvalidTable      = errors.New("invalid indicator table")
	ErrorInvalidValue      = errors.New("invalid value")
)
