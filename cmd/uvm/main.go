package main

import "uvm/internal/cli"

func main() {
	cli.Execute()
}
