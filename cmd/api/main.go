package main

import (
	"fmt"
	"net/http"

	"github.com/MrChorusman/team-calendar-go/internal/config"
	"github.com/MrChorusman/team-calendar-go/internal/gateway/rest"
	appHTTP "github.com/MrChorusman/team-calendar-go/internal/handler/http"
	"github.com/MrChorusman/team-calendar-go/internal/pkg/sse"
	"github.com/MrChorusman/team-calendar-go/internal/service/aggregator"
	"github.com/MrChorusman/team-calendar-go/internal/service/mutation"
	"github.com/MrChorusman/team-calendar-go/internal/service/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	gatewayClient := rest.NewClient(cfg.Gateway)
	directoryClient := rest.NewDirectoryClient(cfg.Directory)

	hub := sse.NewHub()
	aggregatorService := aggregator.NewService(gatewayClient, cfg.Aggregate.Concurrency)
	viewSession := session.New(aggregatorService, hub, "calendar")
	coordinator := mutation.NewCoordinator(gatewayClient, viewSession, hub)

	calendarHandler := appHTTP.NewCalendarHandler(directoryClient, viewSession, coordinator)

	router := appHTTP.NewRouter(cfg, calendarHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
