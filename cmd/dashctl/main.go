package main

import "github.com/thbteam/patient-dashboard/cmd/dashctl/command"

func main() {
	command.Execute()
}
