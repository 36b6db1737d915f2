package main

import (
	"tutorhub-api/core/logger"
	"tutorhub-api/core/server"
)

func main() {
	logger.Init()
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
