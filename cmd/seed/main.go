package main

import (
	stdLog "log"

	"github.com/asanbekov/book-catalog/books/app"
	"github.com/asanbekov/book-catalog/books/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Print("load envs from .env ", zap.Error(err))
	}
	app.Seed(config.NewConfig())
}
