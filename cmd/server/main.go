package main

import (
	"github.com/joho/godotenv"

	"campusleave/internal/app/server"
)

func main() {
	_ = godotenv.Load()
	server.Run()
}
