package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"yatube/app/repositories"

	"github.com/spf13/cobra"
)

func cmdDB(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the Badger database",
	}
	cmd.AddCommand(cmdDBInit(load), cmdDBClean(load), cmdDBBackup(load), cmdDBRestore(load))
	return cmd
}

// cmdDBInit initializes a new empty database.
func cmdDBInit(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbPath(load)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if _, err := os.Stat(path); err == nil {
				fmt.Fprintln(out, "Database already exists. Use 'db clean' first if you want to reinitialize.")
				return nil
			}
			if err := os.MkdirAll(path, 0o755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}

			store, err := repositories.Open(repositories.Options{Path: path})
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer store.Close()

			fmt.Fprintln(out, "Database initialized successfully")
			return nil
		},
	}
}

// cmdDBClean removes the database.
func cmdDBClean(load configLoader) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbPath(load)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Fprintln(out, "Database is already clean (does not exist)")
				return nil
			}
			if !yes && !confirm(cmd.InOrStdin(), out, "Are you sure you want to clean the database? This cannot be undone.") {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}

			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("failed to clean database: %w", err)
			}
			fmt.Fprintln(out, "Database cleaned successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// cmdDBBackup writes a full backup next to the database.
func cmdDBBackup(load configLoader) *cobra.Command {
	var backupDir string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbPath(load)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Fprintln(out, "No database exists to backup")
				return nil
			}
			if err := os.MkdirAll(backupDir, 0o755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			store, err := repositories.Open(repositories.Options{Path: path})
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
			f, err := os.Create(backupFile)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if err := store.Backup(f); err != nil {
				return err
			}
			fmt.Fprintf(out, "Database backed up successfully to %s\n", backupFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&backupDir, "dir", filepath.Join("data", "backups"), "directory the backup file is written to")
	return cmd
}

// cmdDBRestore replaces the database with a backup.
func cmdDBRestore(load configLoader) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backupFile := args[0]
			path, err := dbPath(load)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fi, err := os.Stat(backupFile)
			if os.IsNotExist(err) {
				return fmt.Errorf("backup file does not exist: %s", backupFile)
			}
			if err != nil {
				return fmt.Errorf("failed to stat backup file: %w", err)
			}
			if fi.Size() == 0 {
				return fmt.Errorf("backup file is empty: %s", backupFile)
			}

			if _, err := os.Stat(path); err == nil {
				if !yes && !confirm(cmd.InOrStdin(), out, "Existing database found. Do you want to replace it?") {
					fmt.Fprintln(out, "Operation cancelled")
					return nil
				}
				if err := os.RemoveAll(path); err != nil {
					return fmt.Errorf("failed to remove existing database: %w", err)
				}
			}
			if err := os.MkdirAll(path, 0o755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}

			store, err := repositories.Open(repositories.Options{Path: path})
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			f, err := os.Open(backupFile)
			if err != nil {
				return fmt.Errorf("failed to open backup file: %w", err)
			}
			defer f.Close()

			if err := store.Restore(f); err != nil {
				return fmt.Errorf("failed to restore database: %w", err)
			}
			fmt.Fprintln(out, "Database restored successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
