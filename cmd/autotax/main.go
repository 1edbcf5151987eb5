package main

import "github.com/cyphera/cyphera-autotax/internal/cli"

func main() {
	cli.Execute()
}
