package simulate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aquarisk/campy-qmra/model"
	"github.com/aquarisk/campy-qmra/utils"
)

// RunAssessment runs the full risk assessment for one configuration: all
// trials plus the quantile summary over the reference probability points.
// A failing configuration only fails its own call; callers sweeping many
// configurations can continue with the rest.
func RunAssessment(ctx context.Context, cfg model.AssessmentConfig, opts RunOptions) (res *model.AssessmentResult, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("RunAssessment recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()))
			res, err = nil, fmt.Errorf("assessment panic: %v", r)
		}
	}()

	outcomes, err := RunTrials(ctx, cfg, opts)
	if err != nil {
		logger.Error("RunTrials failed", zap.Error(err))
		return nil, err
	}

	summary, err := Summarize(outcomes, DefaultQuantiles)
	if err != nil {
		logger.Error("Summarize failed", zap.Error(err))
		return nil, err
	}
	for i := range summary.Quantiles {
		summary.Quantiles[i].Value = utils.FormatFloat(summary.Quantiles[i].Value, 3)
	}

	logger.Info("assessment finished",
		zap.Int("trials", cfg.TrialCount),
		zap.Int("cohortSize", cfg.CohortSize),
		zap.Float64("mean", utils.FormatFloat(summary.Mean, 3)),
		zap.Float64("stddev", utils.FormatFloat(summary.StdDev, 3)))

	return &model.AssessmentResult{
		Outcomes: outcomes,
		Summary:  *summary,
	}, nil
}
