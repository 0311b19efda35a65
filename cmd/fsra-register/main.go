package main

import "github.com/askeland/fsra-register/internal/cli"

func main() {
	cli.Execute()
}
