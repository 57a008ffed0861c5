// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package main

import (
	"github.com/nearcare/nearcare/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
