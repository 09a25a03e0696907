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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	// Reply captured from a genuine NTAG215
	data := []byte{0x00, 0x04, 0x04, 0x02, 0x01, 0x00, 0x11, 0x03}

	version, err := ParseVersion(data)
	require.NoError(t, err)

	assert.Equal(t, uint8(0x00), version.FixedHeader)
	assert.Equal(t, uint8(0x04), version.VendorID)
	assert.Equal(t, uint8(0x04), version.ProductType)
	assert.Equal(t, uint8(0x02), version.ProductSubtype)
	assert.Equal(t, uint8(0x01), version.MajorVersion)
	assert.Equal(t, uint8(0x00), version.MinorVersion)
	assert.Equal(t, uint8(0x11), version.StorageSize)
	assert.Equal(t, uint8(0x03), version.ProtocolType)

	assert.Equal(t, ICTypeNTAG215, version.ICType())
	assert.Equal(t, 135, version.Descriptor().TotalPages)
	assert.Equal(t, 504, version.UserBytes())
}

func TestParseVersion_BadLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "Empty", data: nil},
		{name: "Short", data: []byte{0x00, 0x04, 0x04}},
		{name: "Long", data: make([]byte, 9)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			version, err := ParseVersion(tt.data)
			require.ErrorIs(t, err, ErrMalformedResponse)
			assert.Nil(t, version)
		})
	}
}

func TestParseCounter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []byte
		expected uint32
	}{
		{name: "Zero", data: []byte{0x00, 0x00, 0x00}, expected: 0},
		{name: "300_Taps", data: []byte{0x00, 0x01, 0x2C}, expected: 300},
		{name: "Max_24_Bit", data: []byte{0xFF, 0xFF, 0xFF}, expected: 16777215},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			value, err := ParseCounter(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
			assert.LessOrEqual(t, value, uint32(maxCounterValue))
		})
	}
}

func TestParseCounter_BadLength(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, {0x01}, {0x01, 0x02}, {0x01, 0x02, 0x03, 0x04}} {
		_, err := ParseCounter(data)
		require.ErrorIs(t, err, ErrMalformedResponse)
	}
}

func TestParseSignature(t *testing.T) {
	t.Parallel()

	data := make([]byte, 32)
	for i := range data {
		data[i] = byte(i)
	}

	sig, err := ParseSignature(data)
	require.NoError(t, err)
	assert.Equal(t, data, sig)

	// Parsed signature is an independent copy
	data[0] = 0xFF
	assert.Equal(t, byte(0x00), sig[0])

	_, err = ParseSignature(data[:31])
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParsePages(t *testing.T) {
	t.Parallel()

	full := []byte{
		0x01, 0x02, 0x03, 0x04,
		0x05, 0x06, 0x07, 0x08,
		0x09, 0x0A, 0x0B, 0x0C,
		0x0D, 0x0E, 0x0F, 0x10,
	}

	tests := []struct {
		name      string
		data      []byte
		expected  []byte
		pageCount int
	}{
		{
			name:      "Two_Of_Four_Pages",
			data:      full,
			pageCount: 2,
			expected:  full[:8],
		},
		{
			name:      "All_Four_Pages",
			data:      full,
			pageCount: 4,
			expected:  full,
		},
		{
			name:      "Count_Clamped_To_Chunk",
			data:      full,
			pageCount: 9,
			expected:  full,
		},
		{
			name:      "Single_Page",
			data:      full,
			pageCount: 1,
			expected:  full[:4],
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pages, err := ParsePages(tt.data, 0, tt.pageCount)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, pages)
		})
	}
}

func TestParsePages_ShortResponse(t *testing.T) {
	t.Parallel()

	// A short READ response is a communication fault, never zero-padded
	pages, err := ParsePages([]byte{0x01, 0x02, 0x03}, 4, 1)
	require.ErrorIs(t, err, ErrTagCommunication)
	assert.Nil(t, pages)
}
