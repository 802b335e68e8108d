package main

import "github.com/gaurav-prasanna/linkharvest/cmd"

func main() {
	cmd.Execute()
}
