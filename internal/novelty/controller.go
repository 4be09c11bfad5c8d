package novelty

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/novelty-score/internal/types"
	"github.com/jonathan/novelty-score/internal/validation"
)

// Submitter sends a candidate to the scoring service. *client.Client implements it.
type Submitter interface {
	SubmitText(ctx context.Context, text string) (*types.NoveltyResult, error)
	SubmitFile(ctx context.Context, file *types.FileInput) (*types.NoveltyResult, error)
}

// Controller owns one session's RequestState and pending candidate.
// At most one check is in flight; the lock is not held across the transport
// call, so State, Mode and SetMode stay responsive while loading.
type Controller struct {
	mu            sync.Mutex
	submitter     Submitter
	mode          types.InputKind
	pending       types.CandidateInput
	state         State
	validationErr error
	closed        bool
}

// NewController creates an idle controller in text mode.
func NewController(submitter Submitter) *Controller {
	return &Controller{
		submitter: submitter,
		mode:      types.InputText,
		state:     State{Status: Idle},
	}
}

// State returns a snapshot of the request state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns the active input mode.
func (c *Controller) Mode() types.InputKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// ValidationErr returns the validation error currently on display, if any.
func (c *Controller) ValidationErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validationErr
}

// Banner returns the error text to display: a validation error takes
// precedence over a failed request.
func (c *Controller) Banner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.validationErr != nil {
		return Message(c.validationErr)
	}
	if c.state.Status == Failed {
		return c.state.Message
	}
	return ""
}

// SetMode switches between text and file input. It never changes the request state.
func (c *Controller) SetMode(kind types.InputKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	switch kind {
	case types.InputText, types.InputFile:
		c.mode = kind
		return nil
	default:
		return fmt.Errorf("unknown input mode %q", kind)
	}
}

// SetInput records a new candidate and switches to its mode, clearing any
// displayed validation error. A document with an unsupported extension is
// rejected on selection, leaving no file pending.
func (c *Controller) SetInput(input types.CandidateInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.state.Status == Loading {
		return ErrBusy
	}

	c.validationErr = nil
	if input == nil {
		c.pending = nil
		return nil
	}
	c.mode = input.Kind()

	if file, ok := input.(*types.FileInput); ok && file != nil && file.Filename != "" {
		if err := validation.ValidateFilename(file.Filename); err != nil {
			c.validationErr = err
			c.pending = nil
			return err
		}
	}

	c.pending = input
	return nil
}

// Submit validates the pending candidate and, if valid, sends it.
// A validation failure leaves the request state as it was. While a check is
// in flight further submits get ErrBusy and no request is made. The returned
// error is the validation or transport failure, if any.
func (c *Controller) Submit(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return State{Status: Idle}, ErrClosed
	}
	if c.state.Status == Loading {
		state := c.state
		c.mu.Unlock()
		return state, ErrBusy
	}

	candidate := c.candidate()
	if err := validation.Validate(candidate); err != nil {
		c.validationErr = err
		state := c.state
		c.mu.Unlock()
		return state, err
	}

	c.validationErr = nil
	c.state = State{Status: Loading}
	c.mu.Unlock()

	result, err := c.dispatch(ctx, candidate)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		// torn down while in flight; drop the response
		return c.state, nil
	}

	if err != nil {
		c.state = State{Status: Failed, Message: Message(err), Err: err}
		return c.state, err
	}

	c.state = State{Status: Success, Result: result}
	return c.state, nil
}

// Close tears the controller down. A response still in flight is discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.pending = nil
	c.validationErr = nil
	c.state = State{Status: Idle}
}

// candidate returns the pending input for the active mode, or an empty
// candidate of that mode. Caller holds mu.
func (c *Controller) candidate() types.CandidateInput {
	if c.pending != nil && c.pending.Kind() == c.mode {
		return c.pending
	}
	if c.mode == types.InputFile {
		return (*types.FileInput)(nil)
	}
	return types.TextInput{}
}

func (c *Controller) dispatch(ctx context.Context, candidate types.CandidateInput) (*types.NoveltyResult, error) {
	switch in := candidate.(type) {
	case types.TextInput:
		return c.submitter.SubmitText(ctx, in.Value)
	case *types.FileInput:
		return c.submitter.SubmitFile(ctx, in)
	default:
		return nil, fmt.Errorf("unsupported candidate input %T", candidate)
	}
}
