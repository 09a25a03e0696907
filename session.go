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
	"fmt"
	"time"

	"github.com/tagforge/go-ntag/internal/syncutil"
)

// defaultCommandTimeout bounds a single transceive exchange. NTAG commands
// settle in a few milliseconds on real hardware; half a second absorbs slow
// clone readers without stalling callers.
const defaultCommandTimeout = 500 * time.Millisecond

// Session owns the exclusive command channel to one connected tag. At most
// one command is in flight at a time; all operations serialize on the
// session. A Session holds no tag state between calls.
type Session struct {
	transceiver   Transceiver
	timeout       time.Duration
	fallbackPages int

	// mu serializes command issuance on the single physical link.
	mu syncutil.Mutex

	// dumpMu guards dumpActive; a session runs at most one dump at a time.
	dumpMu     syncutil.Mutex
	dumpActive bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTimeout sets the per-command timeout. Each command carries an
// independent timeout; expiry fails only that command, not the session.
func WithTimeout(timeout time.Duration) SessionOption {
	return func(s *Session) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithFallbackPages sets the page count assumed during a full dump when the
// tag cannot be identified. Defaults to 16.
func WithFallbackPages(pages int) SessionOption {
	return func(s *Session) {
		if pages > 0 && pages <= 256 {
			s.fallbackPages = pages
		}
	}
}

// NewSession wraps an established tag link in a Session.
func NewSession(transceiver Transceiver, opts ...SessionOption) *Session {
	s := &Session{
		transceiver:   transceiver,
		timeout:       defaultCommandTimeout,
		fallbackPages: defaultFallbackPages,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// exchange sends one command frame and classifies the raw outcome. The page
// argument is context for error reporting only.
func (s *Session) exchange(ctx context.Context, cmd RawCommand, page uint8) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmdCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.transceiver.Transceive(cmdCtx, cmd.Bytes())
	if err != nil {
		return nil, newCommandError(cmd.Opcode(), page,
			fmt.Errorf("%w: %w", ErrTagCommunication, err))
	}

	if nak(resp) {
		debugf("tag NAKed command 0x%02X (response 0x%02X)", cmd.Opcode(), resp[0])
		return nil, newCommandError(cmd.Opcode(), page,
			fmt.Errorf("%w: NAK 0x%02X", ErrUnsupportedCommand, resp[0]))
	}

	return resp, nil
}

// ReadMemoryPages reads numPages pages starting at startPage. The tag's READ
// returns 4 pages at a time, so the request is rounded up to 4-page blocks
// internally and the result truncated to the requested count. Any command
// failure is surfaced directly.
func (s *Session) ReadMemoryPages(ctx context.Context, startPage uint8, numPages int) ([]byte, error) {
	if numPages <= 0 {
		return nil, fmt.Errorf("%w: page count %d", ErrMalformedResponse, numPages)
	}
	if int(startPage)+numPages > 256 {
		return nil, fmt.Errorf("%w: pages %d-%d exceed the 8-bit address space",
			ErrMalformedResponse, startPage, int(startPage)+numPages-1)
	}

	data := make([]byte, 0, numPages*pageSize)
	for collected := 0; collected < numPages; collected += readChunkPages {
		page := startPage + uint8(collected)

		resp, err := s.exchange(ctx, BuildRead(page), page)
		if err != nil {
			return nil, err
		}

		want := numPages - collected
		chunk, err := ParsePages(resp, page, want)
		if err != nil {
			return nil, err
		}
		data = append(data, chunk...)
	}

	return data, nil
}

// Version issues GET_VERSION and decodes the identification reply. Tags that
// do not implement the command surface ErrUnsupportedCommand.
func (s *Session) Version(ctx context.Context) (*TagVersionInfo, error) {
	resp, err := s.exchange(ctx, BuildGetVersion(), 0)
	if err != nil {
		return nil, err
	}
	return ParseVersion(resp)
}

// Counter issues READ_CNT and returns the 24-bit tap counter value.
func (s *Session) Counter(ctx context.Context) (uint32, error) {
	resp, err := s.exchange(ctx, BuildReadCounter(), 0)
	if err != nil {
		return 0, err
	}
	return ParseCounter(resp)
}

// Signature issues READ_SIG and returns the 32-byte originality signature.
func (s *Session) Signature(ctx context.Context) ([]byte, error) {
	resp, err := s.exchange(ctx, BuildReadSignature(), 0)
	if err != nil {
		return nil, err
	}
	return ParseSignature(resp)
}

// ProtectionStatus reads and decodes the tag's password protection
// configuration. The config page location is resolved from GET_VERSION via
// the registry; tags that cannot be identified surface the detection error.
func (s *Session) ProtectionStatus(ctx context.Context) (PasswordProtectionStatus, error) {
	version, err := s.Version(ctx)
	if err != nil {
		return PasswordProtectionStatus{}, err
	}

	desc := version.Descriptor()
	if desc.ICType == ICTypeUnknown {
		return PasswordProtectionStatus{}, fmt.Errorf(
			"%w: product type 0x%02X, storage size 0x%02X",
			ErrUnknownTagType, version.ProductType, version.StorageSize)
	}

	return s.protectionStatusAt(ctx, desc.ConfigPage, desc)
}

// ProtectionStatusAt decodes protection configuration from an explicit
// config page, for callers that already know the tag layout. The page range
// check assumes the config pages sit 4 pages before the end of memory, as
// they do on every known family.
func (s *Session) ProtectionStatusAt(ctx context.Context, configPage uint8) (PasswordProtectionStatus, error) {
	desc := TagTypeDescriptor{
		ICType:     ICTypeUnknown,
		PageSize:   pageSize,
		TotalPages: int(configPage) + 4,
		ConfigPage: configPage,
	}
	return s.protectionStatusAt(ctx, configPage, desc)
}

func (s *Session) protectionStatusAt(
	ctx context.Context, configPage uint8, desc TagTypeDescriptor,
) (PasswordProtectionStatus, error) {
	resp, err := s.exchange(ctx, BuildRead(configPage), configPage)
	if err != nil {
		return PasswordProtectionStatus{}, err
	}

	pages, err := ParsePages(resp, configPage, 2)
	if err != nil {
		return PasswordProtectionStatus{}, err
	}

	return AnalyzeProtection(pages, desc)
}
