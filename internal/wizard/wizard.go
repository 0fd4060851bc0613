// Package wizard implementa formularios de varios pasos: valida el paso
// actual antes de avanzar y el registro completo antes de enviar.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"animal-rescue/internal/validation"
)

var (
	ErrNotLastStep = errors.New("submit is only allowed on the last step")
	ErrSubmitting  = errors.New("submission already in progress")
)

// Definition describe un formulario: el schema completo y qué campos
// pertenecen a cada paso. Un formulario sin Steps tiene un único paso con
// todos los campos del schema.
type Definition struct {
	Name     string
	Schema   validation.Schema
	Steps    [][]string
	Defaults validation.Values
}

func (d Definition) steps() [][]string {
	if len(d.Steps) == 0 {
		return [][]string{d.Schema.Names()}
	}
	return d.Steps
}

type Wizard struct {
	mu         sync.Mutex
	def        Definition
	step       int
	values     validation.Values
	submitting bool
}

func New(def Definition) *Wizard {
	return &Wizard{
		def:    def,
		step:   1,
		values: def.Defaults.Clone(),
	}
}

func (w *Wizard) Name() string { return w.def.Name }

func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) TotalSteps() int { return len(w.def.steps()) }

// StepFields devuelve los campos del paso n (1-based).
func (w *Wizard) StepFields(n int) []string {
	steps := w.def.steps()
	if n < 1 || n > len(steps) {
		return nil
	}
	return append([]string(nil), steps[n-1]...)
}

func (w *Wizard) Values() validation.Values {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.values.Clone()
}

func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Set mezcla values en el registro acumulado.
func (w *Wizard) Set(values validation.Values) validation.Values {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.values = w.values.Merge(values)
	return w.values.Clone()
}

// Next valida solo el paso actual. Si falla, el paso no cambia.
func (w *Wizard) Next() validation.Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	res := w.def.Schema.ValidateFields(w.values, w.def.steps()[w.step-1])
	if !res.Valid() {
		return res
	}
	if w.step < len(w.def.steps()) {
		w.step++
	}
	return res
}

// Previous nunca valida.
func (w *Wizard) Previous() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > 1 {
		w.step--
	}
	return w.step
}

// ValidateStep valida el paso n sin mover el wizard; n <= 0 valida todo.
func (w *Wizard) ValidateStep(n int) validation.Result {
	values := w.Values()
	if n <= 0 {
		return w.def.Schema.Validate(values)
	}
	return w.def.Schema.ValidateFields(values, w.StepFields(n))
}

// Submit revalida el registro completo y llama a fn. El lock no se mantiene
// durante fn; la reentrada se corta con el flag submitting. Si fn tiene
// éxito el wizard vuelve al paso 1 con los defaults; si falla, conserva todo.
func (w *Wizard) Submit(ctx context.Context, fn func(context.Context, validation.Values) error) (validation.Result, error) {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return validation.Result{}, ErrSubmitting
	}
	if w.step != len(w.def.steps()) {
		w.mu.Unlock()
		return validation.Result{}, ErrNotLastStep
	}
	res := w.def.Schema.Validate(w.values)
	if !res.Valid() {
		w.mu.Unlock()
		return res, nil
	}
	w.submitting = true
	values := w.values.Clone()
	w.mu.Unlock()

	err := fn(ctx, values)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		return res, fmt.Errorf("submit %s: %w", w.def.Name, err)
	}
	w.step = 1
	w.values = w.def.Defaults.Clone()
	return res, nil
}
