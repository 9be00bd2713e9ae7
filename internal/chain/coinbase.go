package chain

import (
	"context"
	"fmt"
	"math/big"
	"runtime"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/harmony-one/abool"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/harmony-one/coinbase/consensus/participation"
	"github.com/harmony-one/coinbase/consensus/reward"
	coinbaseconfig "github.com/harmony-one/coinbase/internal/configs/coinbase"
	"github.com/harmony-one/coinbase/internal/utils"
	"github.com/harmony-one/coinbase/numeric"
)

// ErrRunInProgress is returned when Run is called while another run is active.
var ErrRunInProgress = errors.New("coinbase run already in progress")

// CommitError is returned when a run failed after staging began. The delta
// has been reverted by the time it is returned.
type CommitError struct {
	Epoch uint64
	Err   error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("coinbase of epoch %d not committed: %v", e.Epoch, e.Err)
}

// Unwrap ..
func (e *CommitError) Unwrap() error {
	return e.Err
}

// Option configures a Coinbase.
type Option func(*Coinbase)

// WithConcurrency bounds the number of units computed in parallel.
func WithConcurrency(n int) Option {
	return func(c *Coinbase) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// Coinbase turns the participation of an epoch into balance changes and
// commits them to the account store in one step.
type Coinbase struct {
	ledger   *participation.Ledger
	store    AccountStore
	schedule coinbaseconfig.Schedule

	concurrency int
	running     *abool.AtomicBool

	lock  sync.RWMutex
	state State
	last  *reward.CompletedRound

	log zerolog.Logger
}

// NewCoinbase ..
func NewCoinbase(
	ledger *participation.Ledger,
	store AccountStore,
	schedule coinbaseconfig.Schedule,
	opts ...Option,
) *Coinbase {
	c := &Coinbase{
		ledger:      ledger,
		store:       store,
		schedule:    schedule,
		concurrency: runtime.GOMAXPROCS(0),
		running:     abool.New(),
		state:       Idle,
		log:         utils.Logger().With().Str("module", "coinbase").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state of the coinbase.
func (c *Coinbase) State() State {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.state
}

func (c *Coinbase) setState(s State) {
	c.lock.Lock()
	c.state = s
	c.lock.Unlock()
}

// LastRound returns the result of the last committed run, or nil.
func (c *Coinbase) LastRound() *reward.CompletedRound {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.last
}

// ReadRoundResult ..
func (c *Coinbase) ReadRoundResult() *reward.CompletedRound {
	return c.LastRound()
}

// Run pays the coinbase of epoch. Running an epoch that is already committed
// does nothing and returns nil.
func (c *Coinbase) Run(ctx context.Context, epoch uint64) error {
	if !c.running.SetToIf(false, true) {
		return ErrRunInProgress
	}
	defer c.running.UnSet()

	start := time.Now()
	outcome := outcomeFailed
	defer func() { observeRun(outcome, start) }()

	logger := c.log.With().Uint64("epoch", epoch).Logger()

	rewarded, err := c.store.IsEpochRewarded(epoch)
	if err != nil {
		return errors.Wrapf(err, "cannot read reward marker of epoch %d", epoch)
	}
	if rewarded {
		logger.Info().Msg("[Coinbase] Epoch already rewarded, skipping")
		outcome = outcomeSkipped
		return nil
	}

	instance := c.schedule.InstanceForEpoch(epoch)

	c.setState(Collecting)
	units, err := c.ledger.AllUnitsFor(epoch, instance.NumShards())
	if err != nil {
		c.setState(Idle)
		logger.Warn().Err(err).Msg("[Coinbase] Participation not ready")
		return err
	}
	c.checkSizes(logger, instance, units)

	c.setState(Computing)
	results, err := c.compute(ctx, reward.NewContext(instance), units)
	if err != nil {
		c.setState(Idle)
		logger.Error().Err(err).Msg("[Coinbase] Reward computation failed")
		return err
	}
	for _, r := range results {
		logger.Info().
			Str("unit", r.UnitID.String()).
			Str("pool", numeric.ToDecimal(r.Pool)).
			Str("baseShare", numeric.ToDecimal(r.BaseShare)).
			Str("performanceShare", numeric.ToDecimal(r.PerformanceShare)).
			Uint64("qualified", r.Qualified).
			Int("payouts", len(r.Payouts)).
			Str("remainder", numeric.ToDecimal(r.Remainder)).
			Msg("[Coinbase] Unit rewarded")
	}
	round, err := reward.NewCompletedRound(epoch, results)
	if err != nil {
		c.setState(Idle)
		return err
	}
	balances, err := round.Balances()
	if err != nil {
		c.setState(Idle)
		return err
	}

	c.setState(Staged)
	if err := c.stage(logger, instance, round, balances); err != nil {
		outcome = outcomeReverted
		return c.revert(logger, epoch, err)
	}
	if err := ctx.Err(); err != nil {
		outcome = outcomeReverted
		return c.revert(logger, epoch, err)
	}
	if _, err := c.store.SerializeDelta(); err != nil {
		outcome = outcomeReverted
		return c.revert(logger, epoch, err)
	}
	if err := c.store.CommitDelta(); err != nil {
		outcome = outcomeReverted
		return c.revert(logger, epoch, err)
	}

	c.ledger.Forget(epoch)
	c.lock.Lock()
	c.state = Committed
	c.last = round
	c.lock.Unlock()

	outcome = outcomeCommitted
	lastEpochGauge.Set(float64(epoch))
	remainder, _ := new(big.Float).SetInt(round.Remainder.ToBig()).Float64()
	remainderGauge.Set(remainder)
	logger.Info().
		Str("total", numeric.ToDecimal(round.Total)).
		Str("remainder", numeric.ToDecimal(round.Remainder)).
		Int("accounts", len(balances)).
		Dur("elapsed", time.Since(start)).
		Msg("[Coinbase] Committed")

	c.setState(Idle)
	return nil
}

// checkSizes warns about committees smaller than the configured minimum.
func (c *Coinbase) checkSizes(
	logger zerolog.Logger, instance coinbaseconfig.Instance, units []*participation.Unit,
) {
	for _, u := range units {
		minSize := instance.MinShardSize()
		if u.ID.IsCommittee() {
			minSize = instance.MinCommitteeSize()
		}
		if u.Size() < minSize {
			logger.Warn().
				Str("unit", u.ID.String()).
				Int("size", u.Size()).
				Int("minimum", minSize).
				Msg("[Coinbase] Unit below minimum size")
		}
	}
}

// compute rewards every unit in parallel. Results keep the order of units.
func (c *Coinbase) compute(
	ctx context.Context, rctx reward.Context, units []*participation.Unit,
) ([]*reward.UnitReward, error) {
	results := make([]*reward.UnitReward, len(units))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.concurrency)
	for i := range units {
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			r, err := reward.Compute(rctx, units[i])
			if err != nil {
				return errors.Wrapf(err, "cannot reward unit %s", units[i].ID)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// stage writes the balances, the remainder and the epoch marker to the delta.
func (c *Coinbase) stage(
	logger zerolog.Logger,
	instance coinbaseconfig.Instance,
	round *reward.CompletedRound,
	balances map[common.Address]*uint256.Int,
) error {
	for _, addr := range reward.SortedAddresses(balances) {
		amount := balances[addr]
		if amount.IsZero() {
			continue
		}
		if err := c.store.StageDelta(addr, amount); err != nil {
			return errors.Wrapf(err, "cannot stage %s", addr.Hex())
		}
	}

	if !round.Remainder.IsZero() {
		switch instance.RemainderPolicy() {
		case coinbaseconfig.PolicyTreasury:
			treasury := instance.TreasuryAddress()
			if err := c.store.StageDelta(treasury, round.Remainder); err != nil {
				return errors.Wrapf(err, "cannot stage remainder to treasury %s", treasury.Hex())
			}
			logger.Info().
				Str("treasury", treasury.Hex()).
				Str("amount", numeric.ToDecimal(round.Remainder)).
				Msg("[Coinbase] Remainder sent to treasury")
		default:
			logger.Info().
				Str("amount", numeric.ToDecimal(round.Remainder)).
				Msg("[Coinbase] Remainder burned")
		}
	}

	c.store.MarkEpochRewarded(round.Epoch)
	return nil
}

func (c *Coinbase) revert(logger zerolog.Logger, epoch uint64, err error) error {
	c.store.RevertDelta()
	c.setState(Reverted)
	logger.Error().Err(err).Msg("[Coinbase] Reverted")
	return &CommitError{Epoch: epoch, Err: err}
}
