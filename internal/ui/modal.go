// Package ui holds the presentation state shared across screens: the
// modal stack, toasts and the confirm dialog.
package ui

import (
	"fmt"
	"sync"
)

type modalEntry struct {
	id    string
	close func()
}

// ModalStack tracks open modals, topmost last.
type ModalStack struct {
	mu    sync.Mutex
	stack []modalEntry
}

func NewModalStack() *ModalStack {
	return &ModalStack{}
}

// Register pushes a modal and returns a function that unregisters it.
func (m *ModalStack) Register(id string, closeFn func()) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.stack {
		if e.id == id {
			return nil, fmt.Errorf("modal %q already registered", id)
		}
	}
	m.stack = append(m.stack, modalEntry{id: id, close: closeFn})
	return func() { m.Unregister(id) }, nil
}

func (m *ModalStack) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.stack {
		if e.id == id {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			return
		}
	}
}

// CloseTopmost calls the top modal's close callback. The callback is
// responsible for unregistering.
func (m *ModalStack) CloseTopmost() {
	m.mu.Lock()
	if len(m.stack) == 0 {
		m.mu.Unlock()
		return
	}
	top := m.stack[len(m.stack)-1]
	m.mu.Unlock()

	top.close()
}

// CloseAll closes from the top until the stack is empty. A close callback
// that does not unregister its modal makes this loop forever.
func (m *ModalStack) CloseAll() {
	for m.Len() > 0 {
		m.CloseTopmost()
	}
}

// Position is the modal's index from the bottom, or -1.
func (m *ModalStack) Position(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.stack {
		if e.id == id {
			return i
		}
	}
	return -1
}

func (m *ModalStack) IsTopmost(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stack) > 0 && m.stack[len(m.stack)-1].id == id
}

func (m *ModalStack) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stack)
}

type ModalOptions struct {
	Open    bool
	OnOpen  func()
	OnClose func()
}

// Modal is the open state of a single modal plus the data it is showing.
type Modal[T any] struct {
	mu      sync.Mutex
	open    bool
	data    *T
	onOpen  func()
	onClose func()
}

func NewModal[T any](opts ModalOptions) *Modal[T] {
	return &Modal[T]{open: opts.Open, onOpen: opts.OnOpen, onClose: opts.OnClose}
}

func (m *Modal[T]) Open() {
	m.mu.Lock()
	m.open = true
	m.mu.Unlock()
	if m.onOpen != nil {
		m.onOpen()
	}
}

func (m *Modal[T]) OpenWith(data T) {
	m.SetData(data)
	m.Open()
}

func (m *Modal[T]) Close() {
	m.mu.Lock()
	m.open = false
	m.mu.Unlock()
	if m.onClose != nil {
		m.onClose()
	}
}

func (m *Modal[T]) Toggle() {
	if m.IsOpen() {
		m.Close()
		return
	}
	m.Open()
}

func (m *Modal[T]) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *Modal[T]) SetData(data T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = &data
}

func (m *Modal[T]) ClearData() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
}

// Data returns the current payload and whether one is set.
func (m *Modal[T]) Data() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		var zero T
		return zero, false
	}
	return *m.data, true
}
