package main

import "github.com/procwarden/procwarden/cmd"

// @title procwarden API
// @version 1.0
// @description Control surface of the procwarden process integrity scanner.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cmd.Execute()
}
