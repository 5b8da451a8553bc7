// Command server runs the visa statistics HTTP API.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"server/internal/app"
	"server/internal/handlers"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("server").Function("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer application.Close()

	logger.Configure(application.Config.LogLevel)

	fiberApp := fiber.New(fiber.Config{
		AppName: "visa-stats",
	})
	fiberApp.Use(recover.New())
	fiberApp.Use(cors.New())

	if err := handlers.Router(fiberApp, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		addr := ":" + application.Config.PortBackend
		log.Info("server starting", "addr", addr)
		if err := fiberApp.Listen(addr); err != nil {
			log.Er("server stopped", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down server")
	if err := fiberApp.Shutdown(); err != nil {
		log.Er("shutdown error", err)
	}
}
