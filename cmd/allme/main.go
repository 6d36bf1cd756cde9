package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"allme/internal/config"
	"allme/internal/httpapi"
	"allme/internal/repository"
	"allme/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	taskRepo := repository.NewTaskRepository(db)
	taskSvc := service.NewTaskService(taskRepo, cfg.HorizonDays)
	daySvc := service.NewDayViewService(taskRepo)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: httpapi.NewRouter(httpapi.NewTaskHandler(taskSvc, daySvc)),
	}

	scheduler := service.NewSchedulerService(time.Local)
	extendJob := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := taskSvc.ExtendSeries(jobCtx, time.Now())
		if err != nil {
			log.Printf("extend series: %v", err)
			return
		}
		if n > 0 {
			log.Printf("extend series: materialized %d occurrences", n)
		}
	}
	switch {
	case cfg.ExtendInterval > 0:
		if _, err := scheduler.ScheduleInterval(cfg.ExtendInterval, extendJob); err != nil {
			log.Fatalf("schedule extension: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	case cfg.ExtendAt != "":
		if _, err := scheduler.ScheduleDaily(cfg.ExtendAt, extendJob); err != nil {
			log.Fatalf("schedule extension: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	go func() {
		log.Printf("AllMe listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Println("Shutdown complete.")
}
