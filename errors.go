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
)

// Error categories surfaced by the analysis engine
var (
	// ErrTagCommunication indicates a transceive failure or timeout at the
	// transport boundary.
	ErrTagCommunication = errors.New("tag communication failed")

	// ErrUnsupportedCommand indicates the tag answered with a NAK for an
	// optional command it does not implement.
	ErrUnsupportedCommand = errors.New("command not supported by tag")

	// ErrMalformedResponse indicates a response whose length or structure
	// does not match the fixed frame contract for the issued command.
	ErrMalformedResponse = errors.New("malformed tag response")

	// ErrUnknownTagType indicates GET_VERSION succeeded but the fields did
	// not match any registry entry.
	ErrUnknownTagType = errors.New("unknown tag type")

	// ErrDumpInProgress indicates a full memory dump was requested while
	// another dump holds the session.
	ErrDumpInProgress = errors.New("memory dump already in progress")
)

// CommandError wraps a failure of a single tag command with the opcode and
// page context needed to make transcript-level debugging possible.
type CommandError struct {
	Err    error
	Opcode byte
	Page   uint8
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command 0x%02X (page %d): %v", e.Opcode, e.Page, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// newCommandError wraps err with command context. Returns nil if err is nil.
func newCommandError(opcode byte, page uint8, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{Opcode: opcode, Page: page, Err: err}
}

// IsUnsupportedCommand reports whether err indicates the tag NAKed an
// optional command.
func IsUnsupportedCommand(err error) bool {
	return errors.Is(err, ErrUnsupportedCommand)
}

// IsCommunicationError reports whether err originated at the transport
// boundary (failure or timeout of the underlying transceive).
func IsCommunicationError(err error) bool {
	return errors.Is(err, ErrTagCommunication)
}

// IsMalformedResponse reports whether err indicates a frame-contract
// violation in the tag's reply.
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// nak reports whether a raw response is a Type 2 NAK. Tags answer optional
// commands they do not implement with a single 4-bit frame; anything with
// the ACK value 0xA in the low nibble is not a NAK.
func nak(resp []byte) bool {
	return len(resp) == 1 && resp[0]&0x0F != 0x0A
}
