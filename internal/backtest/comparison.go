package backtest

import (
	"context"
	"sync"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// Compare runs the standard, smart and lump-sum strategies
// concurrently over identical inputs. The smart run forces SmartDCA on
// regardless of the input flag. If any sub-simulation fails the whole
// comparison fails; one strategy's success never masks another's
// failure.
func (s *Simulator) Compare(ctx context.Context, cfg types.DCAConfig) (*types.ComparisonResult, error) {
	smartCfg := cfg
	smartCfg.SmartDCA = true

	var (
		wg       sync.WaitGroup
		standard *types.BacktestResult
		smart    *types.BacktestResult
		lumpSum  *types.BacktestResult
		errs     [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		standard, errs[0] = s.Run(ctx, cfg)
	}()
	go func() {
		defer wg.Done()
		smart, errs[1] = s.RunSmart(ctx, smartCfg)
	}()
	go func() {
		defer wg.Done()
		lumpSum, errs[2] = s.RunLumpSum(ctx, cfg)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &types.ComparisonResult{
		Standard: standard,
		Smart:    smart,
		LumpSum:  lumpSum,
	}, nil
}
