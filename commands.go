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

// NTAG/MIFARE Ultralight command codes (NFC Forum Type 2 command set)
const (
	cmdRead       = 0x30
	cmdReadCnt    = 0x39
	cmdReadSig    = 0x3C
	cmdGetVersion = 0x60
)

const (
	// counterAddr is the NFC tap counter address. NTAG21x parts expose a
	// single counter at address 2; addresses 0 and 1 exist only on
	// Ultralight EV1.
	counterAddr = 0x02

	// readChunkPages is the number of pages a READ command always returns,
	// regardless of how many the caller wants.
	readChunkPages = 4

	// readResponseLen is the byte length of a full READ response.
	readResponseLen = readChunkPages * pageSize
)

// RawCommand is a command frame ready to be sent over the tag session.
// Frames are fixed-length per opcode and immutable once built.
type RawCommand struct {
	frame []byte
}

// Opcode returns the command byte of the frame.
func (c RawCommand) Opcode() byte {
	return c.frame[0]
}

// Bytes returns a copy of the wire frame.
func (c RawCommand) Bytes() []byte {
	out := make([]byte, len(c.frame))
	copy(out, c.frame)
	return out
}

// BuildRead builds a READ frame for the 4-page block starting at startPage.
func BuildRead(startPage uint8) RawCommand {
	return RawCommand{frame: []byte{cmdRead, startPage}}
}

// BuildGetVersion builds a GET_VERSION frame.
func BuildGetVersion() RawCommand {
	return RawCommand{frame: []byte{cmdGetVersion}}
}

// BuildReadCounter builds a READ_CNT frame for the tap counter.
func BuildReadCounter() RawCommand {
	return RawCommand{frame: []byte{cmdReadCnt, counterAddr}}
}

// BuildReadSignature builds a READ_SIG frame for the originality signature.
func BuildReadSignature() RawCommand {
	return RawCommand{frame: []byte{cmdReadSig, 0x00}}
}
