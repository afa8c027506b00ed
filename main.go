package main

import "github.com/ormawadev/orgapi/cmd"

func main() {
	cmd.Execute()
}
