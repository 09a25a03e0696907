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
	"encoding/hex"
	"fmt"
)

// MemoryDumpResult is the outcome of one full dump attempt. A partial dump
// is still a result: the bytes collected before a failure are preserved and
// the failure recorded in Err.
type MemoryDumpResult struct {
	// Err holds the command failure that ended the dump early, nil on a
	// clean run. Version-detect failures do not populate Err; they only
	// degrade TagType.
	Err error

	// Version is the decoded GET_VERSION reply, nil when the tag does not
	// answer the command.
	Version *TagVersionInfo

	// TagType is the detected IC family, ICTypeUnknown when detection
	// degraded.
	TagType ICType

	// Hex is the lowercase hex rendering of Data, two characters per byte,
	// no separators.
	Hex string

	// Data is the raw page bytes in original page order.
	Data []byte

	// TotalPages is the page count the dump aimed for.
	TotalPages int

	// Success is true only when Data covers all TotalPages pages with no
	// command failure.
	Success bool
}

// Pages slices the dump into 4-byte pages. A trailing partial page is
// omitted; dumps only ever accumulate whole pages.
func (r *MemoryDumpResult) Pages() [][]byte {
	pages := make([][]byte, 0, len(r.Data)/pageSize)
	for i := 0; i+pageSize <= len(r.Data); i += pageSize {
		pages = append(pages, r.Data[i:i+pageSize])
	}
	return pages
}

// String returns a short summary of the dump outcome.
func (r *MemoryDumpResult) String() string {
	state := "complete"
	if !r.Success {
		state = fmt.Sprintf("partial (%d/%d pages)", len(r.Data)/pageSize, r.TotalPages)
	}
	return fmt.Sprintf("%s dump of %s: %d bytes", state, r.TagType, len(r.Data))
}

// FullMemoryDump reads the tag's entire memory. The sequence is:
//
//  1. GET_VERSION to resolve the IC family and page count. Failure here
//     degrades to ICTypeUnknown with the session's fallback page count
//     rather than aborting; many legitimate tags lack the command.
//  2. 4-page READs from page 0 until all pages are collected or a READ
//     fails. A mid-dump failure stops the loop, keeps everything collected
//     so far, and records the failure in the result.
//
// Cancelling ctx takes effect once the in-flight command settles; collected
// bytes are returned as a partial result. Only one dump may run per session;
// a concurrent request fails with ErrDumpInProgress.
func (s *Session) FullMemoryDump(ctx context.Context) (*MemoryDumpResult, error) {
	if err := s.acquireDump(); err != nil {
		return nil, err
	}
	defer s.releaseDump()

	result := &MemoryDumpResult{
		TagType:    ICTypeUnknown,
		TotalPages: s.fallbackPages,
	}

	s.detectForDump(ctx, result)
	s.collectPages(ctx, result)

	result.Hex = hex.EncodeToString(result.Data)
	result.Success = result.Err == nil && len(result.Data) == result.TotalPages*pageSize

	debugf("dump finished: %s", result)
	return result, nil
}

// detectForDump resolves the tag type for a dump, degrading instead of
// failing: an unanswered or unrecognized GET_VERSION leaves the result at
// ICTypeUnknown with the fallback page count.
func (s *Session) detectForDump(ctx context.Context, result *MemoryDumpResult) {
	version, err := s.Version(ctx)
	if err != nil {
		debugf("version detect degraded to %s: %v", ICTypeUnknown, err)
		return
	}

	result.Version = version

	desc := version.Descriptor()
	if desc.ICType == ICTypeUnknown {
		debugf("version fields unmatched (product 0x%02X, storage 0x%02X), keeping fallback pages",
			version.ProductType, version.StorageSize)
		return
	}

	result.TagType = desc.ICType
	result.TotalPages = desc.TotalPages
}

// collectPages runs the paged READ loop, accumulating into the result until
// done or a command fails.
func (s *Session) collectPages(ctx context.Context, result *MemoryDumpResult) {
	result.Data = make([]byte, 0, result.TotalPages*pageSize)

	for collected := 0; collected < result.TotalPages; collected += readChunkPages {
		page := uint8(collected)

		resp, err := s.exchange(ctx, BuildRead(page), page)
		if err != nil {
			result.Err = err
			debugf("dump stopped at page %d: %v", page, err)
			return
		}

		chunk, err := ParsePages(resp, page, result.TotalPages-collected)
		if err != nil {
			result.Err = err
			return
		}
		result.Data = append(result.Data, chunk...)
	}
}

func (s *Session) acquireDump() error {
	s.dumpMu.Lock()
	defer s.dumpMu.Unlock()
	if s.dumpActive {
		return ErrDumpInProgress
	}
	s.dumpActive = true
	return nil
}

func (s *Session) releaseDump() {
	s.dumpMu.Lock()
	s.dumpActive = false
	s.dumpMu.Unlock()
}
