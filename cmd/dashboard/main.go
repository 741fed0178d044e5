package main

import "github.com/thbteam/patient-dashboard/api"

func main() {
	api.MainLoop()
}
