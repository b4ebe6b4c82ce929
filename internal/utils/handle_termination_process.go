package utils

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ventafacil/ledger/internal/logger"
)

// HandleTerminationProcess выполняет cleanup при получении SIGINT/SIGTERM.
// Используется для корректной остановки очереди заданий перед выходом.
func HandleTerminationProcess(cleanup func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-c
		logger.Log.Info("получен сигнал завершения", zap.String("signal", sig.String()))
		cleanup()
		os.Exit(1)
	}()
}
