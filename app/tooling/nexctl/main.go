// This program provides a command line client for the nexus ledger node.
package main

import "github.com/nexusbt/nexus/app/tooling/nexctl/cmd"

func main() {
	cmd.Execute()
}
