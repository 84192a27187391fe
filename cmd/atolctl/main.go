package main

import "atolonline/internal/cli"

func main() {
	cli.Execute()
}
