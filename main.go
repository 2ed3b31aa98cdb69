package main

import "klikk/cli"

func main() {
	cli.Execute()
}
