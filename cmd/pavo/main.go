package main

import "pavo/internal/cli"

func main() {
	cli.Execute()
}
