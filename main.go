package main

import "github.com/telamesh/hwmp/cmd"

func main() {
	cmd.Execute()
}
