package novelty

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/novelty-score/internal/client"
	"github.com/jonathan/novelty-score/internal/interpret"
	"github.com/jonathan/novelty-score/internal/types"
	"github.com/jonathan/novelty-score/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubmitter records calls and blocks on release when set.
type fakeSubmitter struct {
	textCalls int32
	fileCalls int32
	started   chan struct{}
	release   chan struct{}
	result    *types.NoveltyResult
	err       error
}

func (f *fakeSubmitter) wait() {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
}

func (f *fakeSubmitter) SubmitText(_ context.Context, _ string) (*types.NoveltyResult, error) {
	atomic.AddInt32(&f.textCalls, 1)
	f.wait()
	return f.result, f.err
}

func (f *fakeSubmitter) SubmitFile(_ context.Context, _ *types.FileInput) (*types.NoveltyResult, error) {
	atomic.AddInt32(&f.fileCalls, 1)
	f.wait()
	return f.result, f.err
}

func highlyNovel() *types.NoveltyResult {
	return &types.NoveltyResult{
		NoveltyScore:          85.3,
		Interpretation:        "Highly novel",
		TotalProposalsChecked: 42,
		SimilarProposals:      []types.SimilarProposal{},
	}
}

func TestController_StartsIdleInTextMode(t *testing.T) {
	c := NewController(&fakeSubmitter{})
	assert.Equal(t, Idle, c.State().Status)
	assert.Equal(t, types.InputText, c.Mode())
	assert.Empty(t, c.Banner())
}

func TestController_TextSuccess(t *testing.T) {
	sub := &fakeSubmitter{result: highlyNovel()}
	c := NewController(sub)

	require.NoError(t, c.SetInput(types.NewTextInput("A sufficiently long proposal description...")))
	state, err := c.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Success, state.Status)
	assert.Equal(t, int32(1), sub.textCalls)
	assert.Equal(t, int32(0), sub.fileCalls)

	view := interpret.Present(state.Result)
	assert.Equal(t, interpret.Green, view.Color)
	assert.False(t, view.HasSimilar())
}

func TestController_ValidationFailureMakesNoCall(t *testing.T) {
	sub := &fakeSubmitter{result: highlyNovel()}
	c := NewController(sub)

	require.NoError(t, c.SetInput(types.NewTextInput("short")))
	state, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrTooShort)

	assert.Equal(t, Idle, state.Status)
	assert.Equal(t, int32(0), sub.textCalls)
	assert.Equal(t, "Please enter at least 10 characters of text", c.Banner())
}

func TestController_ValidationFailureKeepsPriorResult(t *testing.T) {
	sub := &fakeSubmitter{result: highlyNovel()}
	c := NewController(sub)

	require.NoError(t, c.SetInput(types.NewTextInput("A sufficiently long proposal description...")))
	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	require.NoError(t, c.SetInput(types.NewTextInput("tiny")))
	state, err := c.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, Success, state.Status)
	assert.Same(t, sub.result, state.Result)
	assert.NotEmpty(t, c.Banner())

	require.NoError(t, c.SetInput(types.NewTextInput("tiny but edited")))
	assert.Nil(t, c.ValidationErr(), "entering a new candidate clears the validation error")
	assert.Empty(t, c.Banner())
}

func TestController_FileModeWithoutFile(t *testing.T) {
	sub := &fakeSubmitter{}
	c := NewController(sub)

	require.NoError(t, c.SetMode(types.InputFile))
	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, validation.ErrMissingFile)
	assert.Equal(t, int32(0), sub.fileCalls)
}

func TestController_UnsupportedFileRejectedOnSelection(t *testing.T) {
	sub := &fakeSubmitter{}
	c := NewController(sub)

	err := c.SetInput(types.NewFileInput("notes.txt", []byte("hello")))
	assert.ErrorIs(t, err, validation.ErrUnsupportedFormat)
	assert.Equal(t, types.InputFile, c.Mode())
	assert.Equal(t, "Please select a PDF or DOCX file", c.Banner())

	_, err = c.Submit(context.Background())
	assert.ErrorIs(t, err, validation.ErrMissingFile)
	assert.Equal(t, int32(0), sub.fileCalls)
}

func TestController_ModeSwitchKeepsState(t *testing.T) {
	sub := &fakeSubmitter{result: highlyNovel()}
	c := NewController(sub)

	require.NoError(t, c.SetInput(types.NewTextInput("A sufficiently long proposal description...")))
	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	require.NoError(t, c.SetMode(types.InputFile))
	assert.Equal(t, Success, c.State().Status)
	require.NoError(t, c.SetMode(types.InputText))

	// the text candidate is still pending after switching back
	_, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), sub.textCalls)

	assert.Error(t, c.SetMode("voice"))
}

func TestController_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"extraction failed"}`))
	}))
	defer server.Close()

	c := NewController(client.New(&client.Options{BaseURL: server.URL + "/api"}))
	require.NoError(t, c.SetInput(types.NewFileInput("proposal.pdf", []byte("%PDF-1.4"))))

	state, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, client.IsTransportError(err))
	assert.Equal(t, Failed, state.Status)
	assert.Equal(t, "extraction failed", state.Message)
	assert.Nil(t, state.Result)
	assert.Equal(t, "extraction failed", c.Banner())
}

func TestController_RetryAfterFailure(t *testing.T) {
	sub := &fakeSubmitter{err: &client.TransportError{StatusCode: 502, Fallback: client.FallbackCheckMessage}}
	c := NewController(sub)
	require.NoError(t, c.SetInput(types.NewTextInput("A sufficiently long proposal description...")))

	state, _ := c.Submit(context.Background())
	assert.Equal(t, Failed, state.Status)
	assert.Equal(t, client.FallbackCheckMessage, state.Message)

	sub.err = nil
	sub.result = highlyNovel()
	state, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Success, state.Status)
	assert.Empty(t, state.Message)
}

func TestController_RejectsSubmitWhileLoading(t *testing.T) {
	sub := &fakeSubmitter{
		result:  highlyNovel(),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	c := NewController(sub)
	require.NoError(t, c.SetInput(types.NewTextInput("A sufficiently long proposal description...")))

	var wg sync.WaitGroup
	var first State
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, firstErr = c.Submit(context.Background())
	}()

	<-sub.started
	assert.Equal(t, Loading, c.State().Status)

	state, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, Loading, state.Status)
	assert.ErrorIs(t, c.SetInput(types.NewTextInput("another proposal text")), ErrBusy)
	assert.NoError(t, c.SetMode(types.InputFile), "mode switching stays available while loading")

	close(sub.release)
	wg.Wait()

	require.NoError(t, firstErr)
	assert.Equal(t, Success, first.Status)
	assert.Same(t, sub.result, first.Result)
	assert.Equal(t, int32(1), atomic.LoadInt32(&sub.textCalls))
}

func TestController_CloseDropsLateResponse(t *testing.T) {
	sub := &fakeSubmitter{
		result:  highlyNovel(),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	c := NewController(sub)
	require.NoError(t, c.SetInput(types.NewTextInput("A sufficiently long proposal description...")))

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	<-sub.started
	c.Close()
	close(sub.release)

	select {
	case err := <-done:
		assert.NoError(t, err, "a dropped response is not an error")
	case <-time.After(5 * time.Second):
		t.Fatal("submit did not return")
	}

	assert.Equal(t, Idle, c.State().Status)
	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, c.SetMode(types.InputText), ErrClosed)
}

func TestMessage(t *testing.T) {
	assert.Empty(t, Message(nil))
	assert.Equal(t, "Please select a file to upload", Message(validation.Validate(nil)))
	assert.Equal(t, "boom", Message(&client.TransportError{ServerMessage: "boom"}))
	assert.Equal(t, ErrBusy.Error(), Message(ErrBusy))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}
