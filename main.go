// SPDX-License-Identifier: MPL-2.0

package main

import cmd "packager-cli/cmd/packager"

func main() {
	cmd.Execute()
}
