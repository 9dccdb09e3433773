package main

import (
	"github.com/ipmifan/ipmifan/cmd"
)

func main() {
	cmd.Execute()
}
