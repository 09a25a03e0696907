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

/*
Package ntag implements an analysis engine for NTAG21x and MIFARE Ultralight
tags on top of a single raw transceive primitive.

The engine builds the Type 2 command frames (READ, GET_VERSION, READ_CNT,
READ_SIG), parses the fixed-width responses into typed structures, classifies
the tag IC family from its version reply, decodes the password protection
configuration, and orchestrates full memory dumps that keep partial data when
a tag leaves the field mid-read.

It deliberately does not talk to reader hardware. Callers supply a
Transceiver bound to an already-connected tag session; any backend works
(PN532, PC/SC, libnfc, or a simulator such as the internal tagsim package).

Basic Usage:

	session := ntag.NewSession(myTransceiver, ntag.WithTimeout(time.Second))

	version, err := session.Version(ctx)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Printf("tag: %s\n", version.ICType())

	result, err := session.FullMemoryDump(ctx)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Printf("dump (%d pages): %s\n", result.TotalPages, result.Hex)

Error Handling:

All operations return classified errors that can be inspected:

	if errors.Is(err, ntag.ErrUnsupportedCommand) {
	    // the tag NAKed an optional command
	}

Accessor operations (Version, Counter, Signature, ReadMemoryPages,
ProtectionStatus) surface every failure directly. FullMemoryDump is the one
place that degrades instead: a missing GET_VERSION falls back to a
conservative page count, and a mid-dump read failure yields a partial result
with the error recorded.

Thread Safety:

A Session serializes all commands on its single tag link. Calls may be made
from multiple goroutines, but at most one full memory dump can run per
session at a time; concurrent dump requests fail with ErrDumpInProgress.
*/
package ntag
