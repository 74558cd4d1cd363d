package main

import "github.com/NullMDR/azure-js-dev-tools/cmd/cli"

func main() {
	cli.Execute()
}
