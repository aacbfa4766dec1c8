package main

import "github.com/inkwell-journal/inkwell/cmd"

func main() {
	cmd.Execute()
}
