// Copyright 2026 The Tagforge Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ntag

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Transceiver is the single collaborator the analysis engine consumes: a raw
// request/response exchange bound to an already-connected tag session. It can
// be implemented by any reader backend (PN532, PC/SC, libnfc, a simulator).
type Transceiver interface {
	// Transceive sends a raw command frame to the tag and returns the raw
	// response. Implementations must honor ctx cancellation and deadlines.
	Transceive(ctx context.Context, cmd []byte) ([]byte, error)
}

// TransceiverFunc adapts a plain function to the Transceiver interface.
type TransceiverFunc func(ctx context.Context, cmd []byte) ([]byte, error)

// Transceive implements Transceiver.
func (f TransceiverFunc) Transceive(ctx context.Context, cmd []byte) ([]byte, error) {
	return f(ctx, cmd)
}

// MockTransceiver provides a scriptable Transceiver implementation for
// testing. Responses and errors are keyed by command opcode; per-page READ
// behavior can be scripted separately.
type MockTransceiver struct {
	responses     map[byte][]byte
	pageResponses map[uint8][]byte
	errorMap      map[byte]error
	pageErrors    map[uint8]error
	callCount     map[byte]int
	delay         time.Duration
	mu            sync.RWMutex
}

// NewMockTransceiver creates a mock with no scripted responses. Commands
// without a script fail with an error so tests catch unexpected traffic.
func NewMockTransceiver() *MockTransceiver {
	return &MockTransceiver{
		responses:     make(map[byte][]byte),
		pageResponses: make(map[uint8][]byte),
		errorMap:      make(map[byte]error),
		pageErrors:    make(map[uint8]error),
		callCount:     make(map[byte]int),
	}
}

// Transceive implements the Transceiver interface.
func (m *MockTransceiver) Transceive(ctx context.Context, cmd []byte) ([]byte, error) {
	if len(cmd) == 0 {
		return nil, errors.New("empty command frame")
	}

	m.mu.RLock()
	delay := m.delay
	m.mu.RUnlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	opcode := cmd[0]
	m.callCount[opcode]++

	if opcode == cmdRead && len(cmd) >= 2 {
		page := cmd[1]
		if err, ok := m.pageErrors[page]; ok {
			return nil, err
		}
		if resp, ok := m.pageResponses[page]; ok {
			return resp, nil
		}
	}

	if err, ok := m.errorMap[opcode]; ok {
		return nil, err
	}
	if resp, ok := m.responses[opcode]; ok {
		return resp, nil
	}

	return nil, errors.New("no scripted response for command")
}

// SetResponse configures a response for a specific command opcode.
func (m *MockTransceiver) SetResponse(opcode byte, response []byte) {
	m.mu.Lock()
	m.responses[opcode] = response
	m.mu.Unlock()
}

// SetError configures an error to be returned for a specific command opcode.
func (m *MockTransceiver) SetError(opcode byte, err error) {
	m.mu.Lock()
	m.errorMap[opcode] = err
	m.mu.Unlock()
}

// SetPageResponse configures the response for a READ of a specific page.
func (m *MockTransceiver) SetPageResponse(page uint8, response []byte) {
	m.mu.Lock()
	m.pageResponses[page] = response
	m.mu.Unlock()
}

// SetPageError configures an error for a READ of a specific page.
func (m *MockTransceiver) SetPageError(page uint8, err error) {
	m.mu.Lock()
	m.pageErrors[page] = err
	m.mu.Unlock()
}

// SetDelay configures a delay to simulate hardware response time.
func (m *MockTransceiver) SetDelay(delay time.Duration) {
	m.mu.Lock()
	m.delay = delay
	m.mu.Unlock()
}

// CallCount returns how many times an opcode was exchanged.
func (m *MockTransceiver) CallCount(opcode byte) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.callCount[opcode]
}
