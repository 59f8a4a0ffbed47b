package main

import (
	"log"
	"os"

	"github.com/MBAmbhore007/Order-Tracker/internal/api"
	"github.com/MBAmbhore007/Order-Tracker/internal/database"
	"github.com/MBAmbhore007/Order-Tracker/internal/repo"
	"github.com/MBAmbhore007/Order-Tracker/internal/service"
)

func main() {
	db := database.NewPostgres()
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	orderRepo := repo.NewOrderRepo(db)
	orderService := service.NewOrderService(orderRepo)
	router := api.NewRouter(orderService, database.New(db))

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Printf("Server running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
