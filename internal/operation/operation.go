// Package operation issues lifecycle commands against the control plane and
// waits for the runtime-state snapshot to confirm them.
package operation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"github.com/fivetwenty-io/capi-admin/internal/constants"
	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

//go:generate mockgen -destination=mocks/mock_operation.go -package=mocks -source=operation.go Client,Metrics

// Client is the part of the resource client the controller needs.
type Client interface {
	Organizations(ctx context.Context) ([]capi.Organization, error)
	Spaces(ctx context.Context, orgGUID string) ([]capi.Space, error)
	Apps(ctx context.Context, spaceGUID string) ([]capi.App, error)
	Domains(ctx context.Context) ([]capi.Domain, error)
	Routes(ctx context.Context) ([]capi.Route, error)
	UpdateAppState(ctx context.Context, appGUID, state string) (*capi.App, error)
	DeleteRoute(ctx context.Context, routeGUID string) error
}

// Metrics receives operation outcomes. Implementations must be safe for concurrent use.
type Metrics interface {
	ObserveOperation(command, outcome string, elapsed time.Duration)
}

// outcomeFailed labels operations that ended in an error.
const outcomeFailed = "failed"

var errNotConverged = errors.New("runtime state has not converged")

// run is the transient state of one invocation.
type run struct {
	*capi.Result
	started time.Time
}

// Controller implements capi.Operations.
type Controller struct {
	client      Client
	status      capi.StatusSource
	interval    time.Duration
	maxAttempts int
	logger      capi.Logger
	metrics     Metrics
}

// Option configures a Controller.
type Option func(*Controller)

// WithInterval sets the delay between convergence checks.
func WithInterval(interval time.Duration) Option {
	return func(c *Controller) {
		if interval > 0 {
			c.interval = interval
		}
	}
}

// WithMaxAttempts sets the number of convergence checks per command.
func WithMaxAttempts(attempts int) Option {
	return func(c *Controller) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger capi.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(metrics Metrics) Option {
	return func(c *Controller) {
		c.metrics = metrics
	}
}

// New creates a controller.
func New(client Client, status capi.StatusSource, opts ...Option) *Controller {
	controller := &Controller{
		client:      client,
		status:      status,
		interval:    constants.DefaultPollInterval,
		maxAttempts: constants.DefaultPollAttempts,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// ManageApplication implements capi.Operations.ManageApplication. A poll that
// runs out of attempts is reported as OutcomeTimedOut with a nil error.
func (c *Controller) ManageApplication(ctx context.Context, command capi.Command, org, space, app string) (*capi.Result, error) {
	key := capi.AppKey{Org: org, Space: space, App: app}
	op := c.begin(command, key.String())

	switch command {
	case capi.CommandStart, capi.CommandStop, capi.CommandRestart:
	default:
		return c.fail(op, fmt.Errorf("%w %q for applications", capi.ErrUnsupportedCommand, command))
	}

	appGUID, err := c.resolveApp(ctx, key)
	if err != nil {
		return c.fail(op, err)
	}

	switch command {
	case capi.CommandStop:
		err = c.transition(ctx, op, key, appGUID, constants.AppStateStopped)
	case capi.CommandStart:
		err = c.transition(ctx, op, key, appGUID, constants.AppStateStarted)
	case capi.CommandRestart:
		err = c.restart(ctx, op, key, appGUID)
	}

	if err != nil {
		if op.Outcome == capi.OutcomeCancelled {
			return c.finish(op), err
		}

		return c.fail(op, err)
	}

	return c.finish(op), nil
}

// ManageRoute implements capi.Operations.ManageRoute. Deletion is confirmed by
// the control plane's response; there is no polling phase.
func (c *Controller) ManageRoute(ctx context.Context, command capi.Command, hostAndDomain string) (*capi.Result, error) {
	op := c.begin(command, hostAndDomain)

	if command != capi.CommandDelete {
		return c.fail(op, fmt.Errorf("%w %q for routes", capi.ErrUnsupportedCommand, command))
	}

	routeGUID, err := c.resolveRoute(ctx, hostAndDomain)
	if err != nil {
		return c.fail(op, err)
	}

	err = c.client.DeleteRoute(ctx, routeGUID)
	if err != nil {
		return c.fail(op, err)
	}

	op.Outcome = capi.OutcomeConverged

	return c.finish(op), nil
}

// restart stops then starts the application. START is issued even when the
// stop was never observed, but the result then stays OutcomeTimedOut with the
// stop phase's expected and observed states.
func (c *Controller) restart(ctx context.Context, op *run, key capi.AppKey, appGUID string) error {
	if err := c.transition(ctx, op, key, appGUID, constants.AppStateStopped); err != nil {
		return err
	}

	if op.Outcome != capi.OutcomeTimedOut {
		return c.transition(ctx, op, key, appGUID, constants.AppStateStarted)
	}

	expected, observed := op.Expected, op.Observed

	if err := c.transition(ctx, op, key, appGUID, constants.AppStateStarted); err != nil {
		return err
	}

	if op.Outcome == capi.OutcomeConverged {
		op.Outcome = capi.OutcomeTimedOut
		op.Expected = expected
		op.Observed = observed
	}

	return nil
}

// transition issues the state change and polls until it is observed. A
// timeout leaves the outcome at OutcomeTimedOut and returns nil.
func (c *Controller) transition(ctx context.Context, op *run, key capi.AppKey, appGUID, state string) error {
	c.info("Setting application state", map[string]interface{}{
		"operation": op.ID,
		"target":    op.Target,
		"state":     state,
	})

	_, err := c.client.UpdateAppState(ctx, appGUID, state)
	if err != nil {
		return fmt.Errorf("setting %s to %s: %w", key, state, err)
	}

	op.Expected = state

	return c.await(ctx, op, key, state)
}

func (c *Controller) await(ctx context.Context, op *run, key capi.AppKey, expected string) error {
	attempts := 0
	observed := ""

	check := func() (string, error) {
		attempts++

		state, ok, err := c.status.ApplicationState(ctx, key)
		if err != nil {
			c.debug("Runtime state unavailable", map[string]interface{}{
				"operation": op.ID,
				"target":    op.Target,
				"error":     err.Error(),
			})

			return "", errNotConverged
		}

		if ok {
			observed = state
		}

		if !ok || state != expected {
			return "", errNotConverged
		}

		return state, nil
	}

	_, err := backoff.Retry(ctx, check,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.interval)),
		backoff.WithMaxTries(uint(c.maxAttempts)),
		backoff.WithMaxElapsedTime(2*c.interval*time.Duration(c.maxAttempts+1)),
	)

	op.Attempts += attempts
	op.Observed = observed

	switch {
	case err == nil:
		op.Outcome = capi.OutcomeConverged

		return nil
	case ctx.Err() != nil:
		op.Outcome = capi.OutcomeCancelled

		return fmt.Errorf("waiting for %s to become %s: %w", key, expected, ctx.Err())
	default:
		op.Outcome = capi.OutcomeTimedOut

		c.warn("Runtime state did not converge", map[string]interface{}{
			"operation": op.ID,
			"target":    op.Target,
			"expected":  expected,
			"observed":  observed,
			"attempts":  attempts,
		})

		return nil
	}
}

func (c *Controller) begin(command capi.Command, target string) *run {
	op := &run{
		Result: &capi.Result{
			ID:      uuid.NewString(),
			Command: command,
			Target:  target,
		},
		started: time.Now(),
	}

	c.info("Operation started", map[string]interface{}{
		"operation": op.ID,
		"command":   string(command),
		"target":    target,
	})

	return op
}

func (c *Controller) finish(op *run) *capi.Result {
	result := op.Result
	result.Elapsed = time.Since(op.started)

	if c.metrics != nil {
		c.metrics.ObserveOperation(string(result.Command), string(result.Outcome), result.Elapsed)
	}

	c.info("Operation finished", map[string]interface{}{
		"operation": result.ID,
		"target":    result.Target,
		"outcome":   string(result.Outcome),
		"attempts":  result.Attempts,
	})

	return result
}

func (c *Controller) fail(op *run, err error) (*capi.Result, error) {
	result := op.Result
	result.Elapsed = time.Since(op.started)

	if c.metrics != nil {
		c.metrics.ObserveOperation(string(result.Command), outcomeFailed, result.Elapsed)
	}

	c.logError("Operation failed", map[string]interface{}{
		"operation": result.ID,
		"target":    result.Target,
		"error":     err.Error(),
	})

	return nil, err
}

func (c *Controller) debug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

func (c *Controller) info(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Info(msg, fields)
	}
}

func (c *Controller) warn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}

func (c *Controller) logError(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Error(msg, fields)
	}
}
