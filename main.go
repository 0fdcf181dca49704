// file: main.go
package main

import (
	"log"

	"github.com/Mmo23/fifty-flag-forge/database"
	"github.com/Mmo23/fifty-flag-forge/routes"
)

func main() {
	database.Connect()
	database.MigrateTables()
	database.InitRedis()

	r := routes.SetupRouter()

	log.Println("Starting server on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
