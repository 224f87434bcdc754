package main

import "github.com/cubeworks/cubeinsight/cli/cmd"

func main() {
	cmd.Execute()
}
