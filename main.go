package main

import "github.com/RyanBlaney/digit-formants/cmd"

func main() {
	cmd.Execute()
}
