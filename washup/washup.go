// Package washup resets the lounge for a new session: menu prices and
// availability go back to defaults and all orders are wiped.
//
// Steps run strictly in order. A failed step stops the run and whatever already
// completed stays applied, unless the run is transactional.
package washup

import (
	"context"
	"errors"
	"fmt"
)

type StepID string

const (
	StepMenuPrices       StepID = "menu-prices"
	StepMenuAvailability StepID = "menu-availability"
	StepOrderItems       StepID = "order-items"
	StepOrders           StepID = "orders"
	StepUsers            StepID = "users"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusRolledBack Status = "rolled-back"
)

type Step struct {
	ID          StepID `json:"id"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

var (
	ErrUnknownStep = errors.New("invalid washup step")
	ErrNoPassword  = errors.New("password is required")
)

// StepError names the step that stopped the run
type StepError struct {
	Step StepID
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("washup step %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Store performs the bulk operations behind each step
type Store interface {
	ResetPrices(ctx context.Context) error
	ResetAvailability(ctx context.Context) error
	DeleteOrderItems(ctx context.Context) error
	DeleteOrders(ctx context.Context) error
	DeleteNonAdminUsers(ctx context.Context) error
}

// TxStore can run several steps atomically
type TxStore interface {
	Store
	InTransaction(ctx context.Context, fn func(Store) error) error
}

var definitions = []Step{
	{ID: StepMenuPrices, Description: "Setting all menu item prices to 0"},
	{ID: StepMenuAvailability, Description: "Setting all menu items to unavailable"},
	{ID: StepOrderItems, Description: "Deleting all order items"},
	{ID: StepOrders, Description: "Deleting all orders"},
	{ID: StepUsers, Description: "Deleting all non-admin users"},
}

// Steps returns a fresh pending plan. The users step is opt-in.
func Steps(includeUsers bool) []Step {
	plan := make([]Step, 0, len(definitions))
	for _, d := range definitions {
		if d.ID == StepUsers && !includeUsers {
			continue
		}
		d.Status = StatusPending
		plan = append(plan, d)
	}
	return plan
}

// ParseStep validates a step id coming from a request
func ParseStep(s string) (StepID, error) {
	for _, d := range definitions {
		if string(d.ID) == s {
			return d.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStep, s)
}

// Execute runs a single step against store
func Execute(ctx context.Context, store Store, id StepID) error {
	switch id {
	case StepMenuPrices:
		return store.ResetPrices(ctx)
	case StepMenuAvailability:
		return store.ResetAvailability(ctx)
	case StepOrderItems:
		return store.DeleteOrderItems(ctx)
	case StepOrders:
		return store.DeleteOrders(ctx)
	case StepUsers:
		return store.DeleteNonAdminUsers(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStep, id)
	}
}

// PasswordVerifier confirms the operator's password before anything is touched
type PasswordVerifier interface {
	VerifyPassword(ctx context.Context, userID, password string) error
}

type Sequencer struct {
	store         Store
	verifier      PasswordVerifier
	transactional bool
	onCompleted   func(ctx context.Context, id StepID)
}

type Option func(*Sequencer)

// Transactional runs the menu and order steps in one transaction when the store supports it
func Transactional(on bool) Option {
	return func(s *Sequencer) { s.transactional = on }
}

// OnStepCompleted is called once per step that ended up applied
func OnStepCompleted(fn func(ctx context.Context, id StepID)) Option {
	return func(s *Sequencer) { s.onCompleted = fn }
}

func NewSequencer(store Store, verifier PasswordVerifier, opts ...Option) *Sequencer {
	s := &Sequencer{store: store, verifier: verifier}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExecuteStep runs one step on its own, outside of a full run
func (s *Sequencer) ExecuteStep(ctx context.Context, id StepID) error {
	if err := Execute(ctx, s.store, id); err != nil {
		return &StepError{Step: id, Err: err}
	}
	s.completed(ctx, id)
	return nil
}

type Result struct {
	Steps      []Step `json:"steps"`
	FailedStep StepID `json:"failedStep,omitempty"`
}

// Run verifies the password of userID and then executes every step in order
func (s *Sequencer) Run(ctx context.Context, userID, password string, includeUsers bool) (Result, error) {
	res := Result{Steps: Steps(includeUsers)}

	if password == "" {
		return res, ErrNoPassword
	}
	if err := s.verifier.VerifyPassword(ctx, userID, password); err != nil {
		return res, err
	}

	if tx, ok := s.store.(TxStore); ok && s.transactional {
		return s.runAtomic(ctx, tx, res)
	}
	return s.runSequential(ctx, s.store, res, 0)
}

func (s *Sequencer) runSequential(ctx context.Context, store Store, res Result, from int) (Result, error) {
	for i := from; i < len(res.Steps); i++ {
		step := &res.Steps[i]
		if err := step.advance(StatusInProgress); err != nil {
			return res, err
		}
		if err := Execute(ctx, store, step.ID); err != nil {
			_ = step.advance(StatusFailed)
			res.FailedStep = step.ID
			return res, &StepError{Step: step.ID, Err: err}
		}
		_ = step.advance(StatusCompleted)
		s.completed(ctx, step.ID)
	}
	return res, nil
}

// runAtomic applies every step except users in one transaction, then users on its own
func (s *Sequencer) runAtomic(ctx context.Context, tx TxStore, res Result) (Result, error) {
	atomic := 0
	for atomic < len(res.Steps) && res.Steps[atomic].ID != StepUsers {
		atomic++
	}

	var stepErr *StepError
	err := tx.InTransaction(ctx, func(store Store) error {
		for i := 0; i < atomic; i++ {
			step := &res.Steps[i]
			if err := step.advance(StatusInProgress); err != nil {
				return err
			}
			if err := Execute(ctx, store, step.ID); err != nil {
				_ = step.advance(StatusFailed)
				stepErr = &StepError{Step: step.ID, Err: err}
				return stepErr
			}
			_ = step.advance(StatusCompleted)
		}
		return nil
	})
	if err != nil {
		for i := 0; i < atomic; i++ {
			if res.Steps[i].Status == StatusCompleted {
				_ = res.Steps[i].advance(StatusRolledBack)
			}
		}
		if stepErr == nil {
			// commit failed after every step succeeded; all of them are rolled back
			stepErr = &StepError{Step: res.Steps[atomic-1].ID, Err: err}
		}
		res.FailedStep = stepErr.Step
		return res, stepErr
	}

	for i := 0; i < atomic; i++ {
		s.completed(ctx, res.Steps[i].ID)
	}
	return s.runSequential(ctx, s.store, res, atomic)
}

func (s *Sequencer) completed(ctx context.Context, id StepID) {
	if s.onCompleted != nil {
		s.onCompleted(ctx, id)
	}
}
