package main

import "libreria/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
