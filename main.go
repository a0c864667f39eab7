package main

import "github.com/alexiusacademia/goestimate/cmd"

func main() {
	cmd.Execute()
}
