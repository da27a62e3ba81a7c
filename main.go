// SPDX-License-Identifier: MPL-2.0

package main

import cmd "envy-cli/cmd/envy"

func main() {
	cmd.Execute()
}
