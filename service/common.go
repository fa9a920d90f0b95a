package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"yatube/app/config"
	"yatube/app/repositories"
)

type configLoader func() (*config.Config, error)

// dbPath returns the on-disk database directory, refusing in-memory setups
// where maintenance commands have nothing to act on.
func dbPath(load configLoader) (string, error) {
	cfg, err := load()
	if err != nil {
		return "", err
	}
	if err := cfg.Database.Validate(); err != nil {
		return "", err
	}
	if cfg.Database.InMemory {
		return "", errors.New("database.in_memory is set; there is no database on disk")
	}
	return cfg.Database.Path, nil
}

// openExisting opens the configured database, failing if it has not been initialized.
func openExisting(load configLoader) (*repositories.Store, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Database.InMemory {
		if _, err := os.Stat(cfg.Database.Path); os.IsNotExist(err) {
			return nil, fmt.Errorf("no database at %s; run 'yatube db init' first", cfg.Database.Path)
		}
	}
	return repositories.Open(repositories.Options{Path: cfg.Database.Path, InMemory: cfg.Database.InMemory})
}

// confirm asks a yes/no question on out and reads the answer from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}
