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

// Package tagsim provides in-memory simulated NTAG/Ultralight tags that
// answer raw Type 2 command frames. Simulated tags implement the engine's
// Transceiver boundary, so tests and demos can exercise full command
// sequences without reader hardware.
package tagsim

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Type 2 command opcodes the simulator answers
const (
	opRead       = 0x30
	opReadCnt    = 0x39
	opReadSig    = 0x3C
	opGetVersion = 0x60
)

const pageSize = 4

// nakFrame is the generic 4-bit NAK a tag answers to commands it does not
// implement or arguments it rejects.
var nakFrame = []byte{0x00}

// Tag is a simulated NFC tag. The zero value is not usable; construct tags
// with one of the NewNTAG*/NewUltralightEV1 constructors.
type Tag struct {
	readErrors map[uint8]error
	version    []byte
	signature  []byte
	pages      [][]byte
	counter    uint32
	hasCounter bool
	mu         sync.Mutex
}

// NewNTAG213 creates a simulated NTAG213 (45 pages).
func NewNTAG213(uid []byte) *Tag {
	return newTag(uid, 45, []byte{0x00, 0x04, 0x04, 0x02, 0x01, 0x00, 0x0F, 0x03}, 0x12)
}

// NewNTAG215 creates a simulated NTAG215 (135 pages).
func NewNTAG215(uid []byte) *Tag {
	return newTag(uid, 135, []byte{0x00, 0x04, 0x04, 0x02, 0x01, 0x00, 0x11, 0x03}, 0x3E)
}

// NewNTAG216 creates a simulated NTAG216 (231 pages).
func NewNTAG216(uid []byte) *Tag {
	return newTag(uid, 231, []byte{0x00, 0x04, 0x04, 0x02, 0x01, 0x00, 0x13, 0x03}, 0x6D)
}

// NewUltralightEV1 creates a simulated MF0UL21 (41 pages). Ultralight parts
// carry no capability container.
func NewUltralightEV1(uid []byte) *Tag {
	return newTag(uid, 41, []byte{0x00, 0x04, 0x03, 0x01, 0x01, 0x00, 0x0E, 0x03}, 0x00)
}

func newTag(uid []byte, totalPages int, version []byte, ccSize byte) *Tag {
	if len(uid) < 7 {
		uid = []byte{0x04, 0x6A, 0x18, 0x42, 0x2E, 0x2D, 0x80}
	}

	t := &Tag{
		pages:      make([][]byte, totalPages),
		version:    version,
		signature:  make([]byte, 32),
		hasCounter: true,
		readErrors: make(map[uint8]error),
	}
	for i := range t.pages {
		t.pages[i] = make([]byte, pageSize)
	}

	// Serial number layout: pages 0-1 carry the 7-byte UID plus check
	// bytes, page 2 holds BCC1 and the static lock bytes.
	bcc0 := 0x88 ^ uid[0] ^ uid[1] ^ uid[2]
	copy(t.pages[0], []byte{uid[0], uid[1], uid[2], bcc0})
	copy(t.pages[1], uid[3:7])
	t.pages[2][0] = uid[3] ^ uid[4] ^ uid[5] ^ uid[6]

	if ccSize != 0 {
		copy(t.pages[3], []byte{0xE1, 0x10, ccSize, 0x00})
	}

	// AUTH0 = 0xFF: protection disabled from the factory
	t.pages[totalPages-4][3] = 0xFF

	for i := range t.signature {
		t.signature[i] = byte(i * 7)
	}

	return t
}

// SetPage overwrites a page's content, for scripting test fixtures.
func (t *Tag) SetPage(page uint8, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(page) >= len(t.pages) {
		return fmt.Errorf("page %d out of range", page)
	}
	if len(data) != pageSize {
		return fmt.Errorf("page data must be %d bytes, got %d", pageSize, len(data))
	}
	copy(t.pages[page], data)
	return nil
}

// SetCounter sets the simulated tap counter value.
func (t *Tag) SetCounter(value uint32) {
	t.mu.Lock()
	t.counter = value & 0xFFFFFF
	t.mu.Unlock()
}

// DisableGetVersion makes the tag NAK GET_VERSION, simulating parts and
// clone chips that lack the command.
func (t *Tag) DisableGetVersion() {
	t.mu.Lock()
	t.version = nil
	t.mu.Unlock()
}

// DisableCounter makes the tag NAK READ_CNT.
func (t *Tag) DisableCounter() {
	t.mu.Lock()
	t.hasCounter = false
	t.mu.Unlock()
}

// FailReadAt injects a transport error for READs covering the given page.
func (t *Tag) FailReadAt(page uint8, err error) {
	t.mu.Lock()
	t.readErrors[page] = err
	t.mu.Unlock()
}

// TotalPages returns the simulated memory size in pages.
func (t *Tag) TotalPages() int {
	return len(t.pages)
}

// Transceive answers a raw command frame the way the simulated tag would.
func (t *Tag) Transceive(ctx context.Context, cmd []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(cmd) == 0 {
		return nil, errors.New("empty command frame")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch cmd[0] {
	case opRead:
		if len(cmd) != 2 {
			return nakFrame, nil
		}
		return t.read(cmd[1])
	case opGetVersion:
		if t.version == nil {
			return nakFrame, nil
		}
		return append([]byte(nil), t.version...), nil
	case opReadCnt:
		if !t.hasCounter || len(cmd) != 2 || cmd[1] != 0x02 {
			return nakFrame, nil
		}
		return []byte{byte(t.counter >> 16), byte(t.counter >> 8), byte(t.counter)}, nil
	case opReadSig:
		if len(cmd) != 2 || cmd[1] != 0x00 {
			return nakFrame, nil
		}
		return append([]byte(nil), t.signature...), nil
	default:
		return nakFrame, nil
	}
}

// read assembles the 16-byte READ response. Real tags roll over to page 0
// when the read range passes the end of memory; the simulator does the same.
func (t *Tag) read(start uint8) ([]byte, error) {
	if err, ok := t.readErrors[start]; ok {
		return nil, err
	}
	if int(start) >= len(t.pages) {
		return nakFrame, nil
	}

	out := make([]byte, 0, 4*pageSize)
	for i := 0; i < 4; i++ {
		page := (int(start) + i) % len(t.pages)
		out = append(out, t.pages[page]...)
	}
	return out, nil
}
