package main

import "github.com/luthersystems/yascl/cmd"

func main() {
	cmd.Execute()
}
