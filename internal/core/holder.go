package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrModelsNotReady = errors.New("models are not ready")

type ModelState string

const (
	ModelUninitialized ModelState = "UNINITIALIZED"
	ModelTraining      ModelState = "TRAINING"
	ModelReady         ModelState = "READY"
	ModelFailed        ModelState = "FAILED"
)

// ModelHolder tracks the one-time training of the model context. Requests
// that arrive before training finished get ErrModelsNotReady instead of
// waiting.
type ModelHolder struct {
	mu    sync.RWMutex
	state ModelState
	model *ModelContext
	err   error
}

func NewModelHolder() *ModelHolder {
	return &ModelHolder{state: ModelUninitialized}
}

func NewReadyModelHolder(model *ModelContext) *ModelHolder {
	return &ModelHolder{state: ModelReady, model: model}
}

func (h *ModelHolder) State() ModelState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Err returns the training error once the holder is in the failed state.
func (h *ModelHolder) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

func (h *ModelHolder) Get() (*ModelContext, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.state != ModelReady {
		return nil, fmt.Errorf("%w: state is %s", ErrModelsNotReady, h.state)
	}
	return h.model, nil
}

func (h *ModelHolder) begin() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != ModelUninitialized {
		return fmt.Errorf("training already started: state is %s", h.state)
	}
	h.state = ModelTraining
	return nil
}

func (h *ModelHolder) complete(model *ModelContext, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.state = ModelFailed
		h.err = err
		return
	}
	h.state = ModelReady
	h.model = model
}

// Train runs the trainer once. A second call fails without training.
func (h *ModelHolder) Train(ctx context.Context, trainer *Trainer, ds *Dataset) (*ModelContext, error) {
	if err := h.begin(); err != nil {
		return nil, err
	}
	model, err := trainer.Train(ctx, ds)
	h.complete(model, err)
	return model, err
}
