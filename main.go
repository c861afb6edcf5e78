package main

import "github.com/cohost-ai/rental-api/cmd"

// @title                       Co-host Rental API
// @version                     1.0
// @description                 Vacation-rental booking, payouts and AI assistant.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cmd.Execute()
}
