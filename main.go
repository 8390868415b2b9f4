package main

import "github.com/nutshell-sh/nutshell/cmd"

func main() {
	cmd.Execute()
}
