package main

import "github.com/frahmantamala/finance-ledger/cmd"

func main() {
	cmd.Execute()
}
