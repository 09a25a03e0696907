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

// Fixed response lengths per the Type 2 frame contracts
const (
	versionResponseLen   = 8
	counterResponseLen   = 3
	signatureResponseLen = 32
)

// maxCounterValue is the largest value the 24-bit tap counter can hold.
const maxCounterValue = 1<<24 - 1

// TagVersionInfo is the decoded GET_VERSION reply.
type TagVersionInfo struct {
	FixedHeader    uint8 // always 0x00
	VendorID       uint8 // 0x04 = NXP Semiconductors
	ProductType    uint8 // 0x04 = NTAG, 0x03 = MIFARE Ultralight
	ProductSubtype uint8 // antenna capacitance, 0x02 = 50 pF
	MajorVersion   uint8
	MinorVersion   uint8
	StorageSize    uint8 // encoded, key field for variant detection
	ProtocolType   uint8 // 0x03 = ISO/IEC 14443-3
}

// ICType resolves the IC family for this version reply via the registry.
// It is always derived from the stored fields, never cached separately.
func (v *TagVersionInfo) ICType() ICType {
	return LookupTagType(v.ProductType, v.StorageSize, v.ProductSubtype).ICType
}

// Descriptor resolves the memory layout descriptor for this version reply.
func (v *TagVersionInfo) Descriptor() TagTypeDescriptor {
	return LookupTagType(v.ProductType, v.StorageSize, v.ProductSubtype)
}

// UserBytes decodes the StorageSize field into a user memory byte count.
// The upper 7 bits hold n for a size of 2^n; an odd value means the true
// size lies between 2^n and 2^(n+1), and for the known parts the exact
// figure comes from the datasheet.
func (v *TagVersionInfo) UserBytes() int {
	if v.StorageSize&0x01 == 1 {
		switch v.StorageSize {
		case 0x0B:
			return 48 // NTAG210 / MF0UL11
		case 0x0F:
			return 144 // NTAG213
		case 0x11:
			return 504 // NTAG215
		case 0x13:
			return 888 // NTAG216
		}
	}
	return 1 << (v.StorageSize >> 1)
}

// String returns a short human-readable summary of the version reply.
func (v *TagVersionInfo) String() string {
	return fmt.Sprintf("%s v%d.%d (vendor 0x%02X, storage 0x%02X)",
		v.ICType(), v.MajorVersion, v.MinorVersion, v.VendorID, v.StorageSize)
}

// ParseVersion decodes an 8-byte GET_VERSION response into TagVersionInfo.
func ParseVersion(data []byte) (*TagVersionInfo, error) {
	if len(data) != versionResponseLen {
		return nil, fmt.Errorf("%w: GET_VERSION expects %d bytes, got %d",
			ErrMalformedResponse, versionResponseLen, len(data))
	}

	return &TagVersionInfo{
		FixedHeader:    data[0],
		VendorID:       data[1],
		ProductType:    data[2],
		ProductSubtype: data[3],
		MajorVersion:   data[4],
		MinorVersion:   data[5],
		StorageSize:    data[6],
		ProtocolType:   data[7],
	}, nil
}

// ParseCounter decodes a 3-byte READ_CNT response into the 24-bit tap
// counter value (most significant byte first).
func ParseCounter(data []byte) (uint32, error) {
	if len(data) != counterResponseLen {
		return 0, fmt.Errorf("%w: READ_CNT expects %d bytes, got %d",
			ErrMalformedResponse, counterResponseLen, len(data))
	}

	return uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2]), nil
}

// ParseSignature validates and copies the 32-byte READ_SIG response.
func ParseSignature(data []byte) ([]byte, error) {
	if len(data) != signatureResponseLen {
		return nil, fmt.Errorf("%w: READ_SIG expects %d bytes, got %d",
			ErrMalformedResponse, signatureResponseLen, len(data))
	}

	sig := make([]byte, signatureResponseLen)
	copy(sig, data)
	return sig, nil
}

// ParsePages truncates a 16-byte READ response to the page count the caller
// actually asked for. A READ always returns 4 pages; a shorter response is a
// communication fault, never silently zero-padded.
func ParsePages(data []byte, startPage uint8, pageCount int) ([]byte, error) {
	if len(data) < readResponseLen {
		return nil, fmt.Errorf("%w: READ at page %d returned %d bytes, want %d",
			ErrTagCommunication, startPage, len(data), readResponseLen)
	}

	if pageCount < 0 {
		pageCount = 0
	}
	if pageCount > readChunkPages {
		pageCount = readChunkPages
	}

	out := make([]byte, pageCount*pageSize)
	copy(out, data[:pageCount*pageSize])
	return out, nil
}
