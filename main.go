package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/orderspot/connecthost-api/cmd/app"
)

// @title           ConnectHost API
// @version         1.0
// @description     Orders, reservations and billing for hospitality hosts.
//
// @contact.name   API Support
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
