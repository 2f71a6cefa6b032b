package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/coinwarden/signerd/config"
	"github.com/coinwarden/signerd/internal/core/application"
	dbbadger "github.com/coinwarden/signerd/internal/infrastructure/storage/db/badger"
	"github.com/coinwarden/signerd/internal/interfaces/ws"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	dbManager, err := dbbadger.NewDbManager(config.GetDatadir(), log.New())
	if err != nil {
		log.WithError(err).Panic("error while opening db")
	}
	walletRepo := dbbadger.NewWalletRepositoryImpl(dbManager)
	defer walletRepo.Close()

	walletSvc, err := application.NewWalletService(
		context.Background(), walletRepo, config.GetNetwork(),
	)
	if err != nil {
		log.WithError(err).Panic("error while loading wallet")
	}
	signerSvc := application.NewSignerService(walletSvc)

	bridgeSvc := ws.NewService(
		config.GetString(config.ListenAddrKey), walletSvc, signerSvc,
	)

	log.Debug("starting daemon")
	go func() {
		if err := bridgeSvc.Start(); err != nil {
			log.WithError(err).Panic("error listening on bridge interface")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("exiting")
	bridgeSvc.Stop()
	walletSvc.Lock(context.Background())
}
