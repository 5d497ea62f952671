package main

import "github.com/StinkyLord/ibuildhw/cmd"

func main() {
	cmd.Execute()
}
