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

package tagsim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag_Read(t *testing.T) {
	t.Parallel()

	tag := NewNTAG213(nil)

	resp, err := tag.Transceive(context.Background(), []byte{0x30, 0x00})
	require.NoError(t, err)
	require.Len(t, resp, 16)

	// Page 0 byte 0 is the first UID byte (NXP manufacturer code)
	assert.Equal(t, byte(0x04), resp[0])
	// Page 3 is the capability container
	assert.Equal(t, byte(0xE1), resp[12])
}

func TestTag_ReadRollsOver(t *testing.T) {
	t.Parallel()

	tag := NewNTAG213(nil)
	require.NoError(t, tag.SetPage(44, []byte{0xDE, 0xAD, 0xBE, 0xEF}))

	// READ at the last page wraps back to page 0
	resp, err := tag.Transceive(context.Background(), []byte{0x30, 44})
	require.NoError(t, err)
	require.Len(t, resp, 16)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, resp[:4])
	assert.Equal(t, byte(0x04), resp[4]) // page 0 again
}

func TestTag_ReadOutOfRangeNAKs(t *testing.T) {
	t.Parallel()

	tag := NewNTAG213(nil)

	resp, err := tag.Transceive(context.Background(), []byte{0x30, 200})
	require.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestTag_GetVersion(t *testing.T) {
	t.Parallel()

	tag := NewNTAG215(nil)

	resp, err := tag.Transceive(context.Background(), []byte{0x60})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x04, 0x04, 0x02, 0x01, 0x00, 0x11, 0x03}, resp)

	tag.DisableGetVersion()
	resp, err = tag.Transceive(context.Background(), []byte{0x60})
	require.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestTag_Counter(t *testing.T) {
	t.Parallel()

	tag := NewNTAG215(nil)
	tag.SetCounter(300)

	resp, err := tag.Transceive(context.Background(), []byte{0x39, 0x02})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x2C}, resp)

	// Wrong counter address NAKs
	resp, err = tag.Transceive(context.Background(), []byte{0x39, 0x00})
	require.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestTag_Signature(t *testing.T) {
	t.Parallel()

	tag := NewNTAG216(nil)

	resp, err := tag.Transceive(context.Background(), []byte{0x3C, 0x00})
	require.NoError(t, err)
	assert.Len(t, resp, 32)
}

func TestTag_ContextCancellation(t *testing.T) {
	t.Parallel()

	tag := NewNTAG213(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tag.Transceive(ctx, []byte{0x30, 0x00})
	require.ErrorIs(t, err, context.Canceled)
}
