package main

import "github.com/oceanmesh/fvprep/cmd"

func main() {
	cmd.Execute()
}
