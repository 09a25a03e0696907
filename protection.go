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
	"fmt"
)

// CFG0/CFG1 register layout (NTAG21x and Ultralight EV1 share the relative
// layout at their respective config offsets):
//   CFG0 byte 3: AUTH0 - first page requiring authentication (0xFF = off)
//   CFG1 byte 0: PROT (bit 7), CFGLCK (bit 6), AUTHLIM (bits 0-2)
const (
	auth0Offset  = 3
	accessOffset = 4

	accessProtBit   = 0x80
	accessCfgLckBit = 0x40
	authLimMask     = 0x07
)

// configBytesLen is the two config pages (CFG0 + CFG1) the analyzer decodes.
const configBytesLen = 2 * pageSize

// PasswordProtectionStatus is the decoded protection configuration of a tag.
type PasswordProtectionStatus struct {
	// ProtectionStartPage is AUTH0: the first page requiring password
	// authentication. A value past the end of memory disables protection.
	ProtectionStartPage uint8

	// IsProtected is true when ProtectionStartPage is inside the tag's page
	// range and at least one of read/write protection applies.
	IsProtected bool

	// ReadProtected is true when the PROT bit selects read+write protection
	// (as opposed to write-only) and protection is active.
	ReadProtected bool

	// WriteProtected is true when writes from ProtectionStartPage onward
	// require authentication.
	WriteProtected bool

	// ConfigLocked is true when the configuration pages are locked (CFGLCK).
	ConfigLocked bool

	// AuthLimitEnabled is true when failed-authentication limiting is on.
	AuthLimitEnabled bool

	// AuthLimitCounter is the AUTHLIM field, 0-7 (3 bits, saturating).
	AuthLimitCounter uint8
}

// String returns a one-line summary of the protection status.
func (s PasswordProtectionStatus) String() string {
	if !s.IsProtected {
		return "unprotected"
	}
	mode := "write"
	if s.ReadProtected {
		mode = "read+write"
	}
	out := fmt.Sprintf("%s protected from page %d", mode, s.ProtectionStartPage)
	if s.AuthLimitEnabled {
		out += fmt.Sprintf(", auth limit %d", s.AuthLimitCounter)
	}
	return out
}

// AnalyzeProtection decodes the CFG0/CFG1 bytes of a tag into its protection
// status, using the descriptor's page count to decide whether AUTH0 actually
// falls inside memory. Reserved bits of the ACCESS byte are ignored.
func AnalyzeProtection(configBytes []byte, desc TagTypeDescriptor) (PasswordProtectionStatus, error) {
	if len(configBytes) < configBytesLen {
		return PasswordProtectionStatus{}, fmt.Errorf(
			"%w: config pages expect %d bytes, got %d",
			ErrMalformedResponse, configBytesLen, len(configBytes))
	}

	auth0 := configBytes[auth0Offset]
	access := configBytes[accessOffset]

	inRange := int(auth0) < desc.TotalPages

	status := PasswordProtectionStatus{
		ProtectionStartPage: auth0,
		WriteProtected:      inRange,
		ReadProtected:       inRange && access&accessProtBit != 0,
		ConfigLocked:        access&accessCfgLckBit != 0,
		AuthLimitCounter:    access & authLimMask,
	}
	status.AuthLimitEnabled = status.AuthLimitCounter != 0
	status.IsProtected = inRange && (status.ReadProtected || status.WriteProtected)

	return status, nil
}
