// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command cmdconsole runs the interactive command console.
package main

import (
	"os"

	"github.com/jeranaias/cmdconsole/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
