package common

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"hackathon_system/common/config"
	"hackathon_system/common/db"
	"hackathon_system/common/metrics"
	"hackathon_system/lib/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HackathonSystem struct {
	Config  *config.Config
	Router  *gin.Engine
	DB      *gorm.DB
	Metrics *metrics.Collector

	processes []func()
	defers    []func()

	StopCtx  context.Context
	stopFunc context.CancelFunc
	stopWG   sync.WaitGroup
}

func InitHackathonSystem(configPath string) *HackathonSystem {
	return NewHackathonSystem(config.ReadConfig(configPath))
}

// NewHackathonSystem sets up logger, db and router for already filled in config
func NewHackathonSystem(cfg *config.Config) *HackathonSystem {
	hs := &HackathonSystem{
		Config:  cfg,
		Metrics: metrics.NewCollector(),
	}
	logger.InitLogger(hs.Config.Logger)
	hs.StopCtx, hs.stopFunc = context.WithCancel(context.Background())

	var err error
	hs.DB, err = db.NewDB(hs.StopCtx, hs.Config.DB)
	if err != nil {
		logger.Panic("Can not set up db connection, error: %s", err.Error())
	}
	hs.AddDefer(func() { db.Close(hs.DB) })

	hs.InitServer()

	return hs
}

func (hs *HackathonSystem) AddProcess(f func()) {
	hs.processes = append(hs.processes, f)
}

func (hs *HackathonSystem) AddDefer(f func()) {
	hs.defers = append(hs.defers, f)
}

// Run starts all processes and http server, and blocks until Stop is called or signal is received
func (hs *HackathonSystem) Run() {
	signalCtx, cancel := signal.NotifyContext(hs.StopCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-signalCtx.Done()
		hs.stopFunc()
	}()

	for _, process := range hs.processes {
		hs.Go(process)
	}

	hs.runServer()

	hs.stopWG.Wait()

	for _, d := range hs.defers {
		d()
	}
	logger.Info("Hackathon system is stopped")
}

func (hs *HackathonSystem) Stop() {
	hs.stopFunc()
}

func (hs *HackathonSystem) Addr() string {
	addr := ":" + strconv.Itoa(hs.Config.Port)
	if hs.Config.Host != nil {
		addr = *hs.Config.Host + addr
	}
	return addr
}

func (hs *HackathonSystem) runServer() {
	addr := hs.Addr()
	logger.Info("Starting server at " + addr)
	server := http.Server{
		Addr:    addr,
		Handler: hs.Router,
	}
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-hs.StopCtx.Done()
		logger.Info("Shutting down server")
		server.Shutdown(context.Background())
	}()
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed, shutting down all processes, error: %v", err)
		hs.stopFunc()
	}
	<-shutdownDone
}

func (hs *HackathonSystem) Go(f func()) {
	hs.stopWG.Add(1)
	go hs.runProcess(f)
}

func (hs *HackathonSystem) runProcess(f func()) {
	defer func() {
		v := recover()
		if v != nil {
			logger.Error("One process got panic %v, shutting down all processes gracefully", v)
			hs.stopFunc()
		}
		hs.stopWG.Done()
	}()

	f()
}
