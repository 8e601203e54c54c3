// Command librarian is the interactive console for the library: it tracks
// books, users, and borrowing transactions, and mirrors its state to a JSON
// file between runs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/shelfledger/librarian-go/internal/config"
	"github.com/shelfledger/librarian-go/internal/console"
	"github.com/shelfledger/librarian-go/internal/core"
	"github.com/shelfledger/librarian-go/internal/library"
	"github.com/shelfledger/librarian-go/internal/logging"
	"github.com/shelfledger/librarian-go/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "librarian:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Menu on stdout, logs on stderr.
	logger := logging.Setup(cfg.Logging, os.Stderr)

	store := storage.NewFileStore(cfg.Storage.DataFile, logger)

	state, err := store.Load()
	if err != nil {
		if !errors.Is(err, core.ErrFileNotFound) {
			return err
		}

		logger.Info("no data file yet, starting with empty state", "path", store.Path())
		state = library.NewState()
	}

	service := library.NewService(state, logger)

	return console.New(os.Stdin, os.Stdout, service, store, logger).Run()
}
