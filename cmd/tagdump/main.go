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

// tagdump runs the tag analysis engine against a simulated tag and prints
// the full analysis: version, counter, signature, protection status, and a
// complete memory dump. It exists to demonstrate the API; real deployments
// plug their reader's transceive into ntag.NewSession instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	ntag "github.com/tagforge/go-ntag"
	"github.com/tagforge/go-ntag/internal/tagsim"
)

var (
	flagVariant   string
	flagNoVersion bool
	flagDebug     bool
)

func init() {
	flag.StringVar(&flagVariant, "variant", "ntag215", "Simulated tag variant (ntag213, ntag215, ntag216, ulev1)")
	flag.BoolVar(&flagNoVersion, "no-version", false, "Simulate a tag that NAKs GET_VERSION")
	flag.BoolVar(&flagDebug, "debug", false, "Enable debug output")
}

func newSimTag(variant string) (*tagsim.Tag, error) {
	switch variant {
	case "ntag213":
		return tagsim.NewNTAG213(nil), nil
	case "ntag215":
		return tagsim.NewNTAG215(nil), nil
	case "ntag216":
		return tagsim.NewNTAG216(nil), nil
	case "ulev1":
		return tagsim.NewUltralightEV1(nil), nil
	default:
		return nil, fmt.Errorf("unknown variant %q", variant)
	}
}

func run() error {
	tag, err := newSimTag(flagVariant)
	if err != nil {
		return err
	}
	tag.SetCounter(300)
	if flagNoVersion {
		tag.DisableGetVersion()
	}

	ctx := context.Background()
	session := ntag.NewSession(tag)

	if version, err := session.Version(ctx); err != nil {
		fmt.Printf("version:    unavailable (%v)\n", err)
	} else {
		fmt.Printf("version:    %s\n", version)
	}

	if counter, err := session.Counter(ctx); err != nil {
		fmt.Printf("counter:    unavailable (%v)\n", err)
	} else {
		fmt.Printf("counter:    %d\n", counter)
	}

	if sig, err := session.Signature(ctx); err != nil {
		fmt.Printf("signature:  unavailable (%v)\n", err)
	} else {
		fmt.Printf("signature:  %x\n", sig)
	}

	if status, err := session.ProtectionStatus(ctx); err != nil {
		fmt.Printf("protection: unavailable (%v)\n", err)
	} else {
		fmt.Printf("protection: %s\n", status)
	}

	result, err := session.FullMemoryDump(ctx)
	if err != nil {
		return fmt.Errorf("dump failed: %w", err)
	}

	fmt.Printf("dump:       %s\n", result)
	if result.Err != nil {
		fmt.Printf("dump error: %v\n", result.Err)
	}
	fmt.Printf("memory:\n")
	for i, page := range result.Pages() {
		fmt.Printf("  page %3d: %x\n", i, page)
	}

	return nil
}

func main() {
	flag.Parse()
	if flagDebug {
		ntag.SetDebugEnabled(true)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tagdump: %v\n", err)
		os.Exit(1)
	}
}
