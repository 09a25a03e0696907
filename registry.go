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

// pageSize is the fixed addressable unit on NTAG/Ultralight tags.
const pageSize = 4

// defaultFallbackPages is the conservative page count assumed when the tag
// cannot be identified. 16 pages covers the smallest Ultralight parts.
const defaultFallbackPages = 16

// ICType identifies a known tag IC family.
type ICType string

const (
	// ICTypeNTAG210 represents the NTAG210 chip (48 bytes user memory).
	ICTypeNTAG210 ICType = "NTAG210"
	// ICTypeNTAG212 represents the NTAG212 chip (128 bytes user memory).
	ICTypeNTAG212 ICType = "NTAG212"
	// ICTypeNTAG213 represents the NTAG213 chip (144 bytes user memory).
	ICTypeNTAG213 ICType = "NTAG213"
	// ICTypeNTAG215 represents the NTAG215 chip (504 bytes user memory).
	ICTypeNTAG215 ICType = "NTAG215"
	// ICTypeNTAG216 represents the NTAG216 chip (888 bytes user memory).
	ICTypeNTAG216 ICType = "NTAG216"
	// ICTypeUltralightEV1_11 represents the MF0UL11 (Ultralight EV1, 48 bytes).
	// EV2 generation parts report the same product type and storage size and
	// share this descriptor; they differ only in the version fields.
	ICTypeUltralightEV1_11 ICType = "MIFARE Ultralight EV1 (MF0UL11)"
	// ICTypeUltralightEV1_21 represents the MF0UL21 (Ultralight EV1, 128 bytes).
	ICTypeUltralightEV1_21 ICType = "MIFARE Ultralight EV1 (MF0UL21)"
	// ICTypeUnknown represents a tag that did not match any registry entry.
	ICTypeUnknown ICType = "Unknown"
)

// TagTypeDescriptor is the static memory layout for an IC family.
// Descriptors are immutable; Lookup returns them by value.
type TagTypeDescriptor struct {
	ICType     ICType
	PageSize   int
	TotalPages int
	// ConfigPage is the page holding CFG0 (AUTH0 lives in its last byte).
	// For every known family this sits 4 pages before the end of memory.
	ConfigPage uint8
}

// versionKey matches GET_VERSION replies to descriptors. Product type and
// storage size together are unique per family; the subtype only encodes the
// antenna capacitance and is not part of the key.
type versionKey struct {
	productType byte
	storageSize byte
}

// GET_VERSION product type codes
const (
	productTypeNTAG       = 0x04
	productTypeUltralight = 0x03
)

var tagTypeTable = map[versionKey]TagTypeDescriptor{
	{productTypeNTAG, 0x0B}: {ICType: ICTypeNTAG210, PageSize: pageSize, TotalPages: 20, ConfigPage: 16},
	{productTypeNTAG, 0x0E}: {ICType: ICTypeNTAG212, PageSize: pageSize, TotalPages: 41, ConfigPage: 37},
	{productTypeNTAG, 0x0F}: {ICType: ICTypeNTAG213, PageSize: pageSize, TotalPages: 45, ConfigPage: 41},
	{productTypeNTAG, 0x11}: {ICType: ICTypeNTAG215, PageSize: pageSize, TotalPages: 135, ConfigPage: 131},
	{productTypeNTAG, 0x13}: {ICType: ICTypeNTAG216, PageSize: pageSize, TotalPages: 231, ConfigPage: 227},

	{productTypeUltralight, 0x0B}: {
		ICType: ICTypeUltralightEV1_11, PageSize: pageSize, TotalPages: 20, ConfigPage: 16,
	},
	{productTypeUltralight, 0x0E}: {
		ICType: ICTypeUltralightEV1_21, PageSize: pageSize, TotalPages: 41, ConfigPage: 37,
	},
}

// unknownDescriptor is handed out when no table entry matches, so callers
// can still attempt a best-effort extraction instead of failing outright.
var unknownDescriptor = TagTypeDescriptor{
	ICType:     ICTypeUnknown,
	PageSize:   pageSize,
	TotalPages: defaultFallbackPages,
	ConfigPage: defaultFallbackPages - 4,
}

// LookupTagType resolves a descriptor from GET_VERSION identification fields.
// The subtype parameter is accepted for completeness but does not influence
// matching. Unmatched fields yield the Unknown descriptor.
func LookupTagType(productType, storageSize, _ byte) TagTypeDescriptor {
	if desc, ok := tagTypeTable[versionKey{productType, storageSize}]; ok {
		return desc
	}
	return unknownDescriptor
}

// DescriptorFor returns the layout descriptor for a known IC type, or the
// Unknown descriptor when the type is not in the registry.
func DescriptorFor(icType ICType) TagTypeDescriptor {
	for _, desc := range tagTypeTable {
		if desc.ICType == icType {
			return desc
		}
	}
	return unknownDescriptor
}
