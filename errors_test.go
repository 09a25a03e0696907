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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandError(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("%w: reader unplugged", ErrTagCommunication)
	err := newCommandError(0x30, 12, underlying)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "0x30")
	assert.Contains(t, err.Error(), "page 12")

	require.ErrorIs(t, err, ErrTagCommunication)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, byte(0x30), cmdErr.Opcode)
	assert.Equal(t, uint8(12), cmdErr.Page)
}

func TestCommandError_NilPassthrough(t *testing.T) {
	t.Parallel()

	assert.NoError(t, newCommandError(0x30, 0, nil))
}

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		classify func(error) bool
		name     string
		expected bool
	}{
		{
			name:     "Unsupported_Direct",
			err:      ErrUnsupportedCommand,
			classify: IsUnsupportedCommand,
			expected: true,
		},
		{
			name:     "Unsupported_Wrapped",
			err:      newCommandError(0x60, 0, fmt.Errorf("%w: NAK 0x00", ErrUnsupportedCommand)),
			classify: IsUnsupportedCommand,
			expected: true,
		},
		{
			name:     "Communication_Wrapped",
			err:      fmt.Errorf("%w: timeout", ErrTagCommunication),
			classify: IsCommunicationError,
			expected: true,
		},
		{
			name:     "Malformed",
			err:      fmt.Errorf("%w: got 3 bytes", ErrMalformedResponse),
			classify: IsMalformedResponse,
			expected: true,
		},
		{
			name:     "Mismatched_Category",
			err:      errors.New("something else"),
			classify: IsCommunicationError,
			expected: false,
		},
		{
			name:     "Nil",
			err:      nil,
			classify: IsUnsupportedCommand,
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.classify(tt.err))
		})
	}
}

func TestNAKDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		resp     []byte
		expected bool
	}{
		{name: "NAK_0x00", resp: []byte{0x00}, expected: true},
		{name: "NAK_0x04", resp: []byte{0x04}, expected: true},
		{name: "NAK_0x01", resp: []byte{0x01}, expected: true},
		{name: "ACK", resp: []byte{0x0A}, expected: false},
		{name: "Data_Response", resp: []byte{0x00, 0x01, 0x2C}, expected: false},
		{name: "Empty", resp: nil, expected: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, nak(tt.resp))
		})
	}
}
