package main

import "github.com/jdoyle/centavo/cmd/centavo/cmd"

func main() {
	cmd.Execute()
}
