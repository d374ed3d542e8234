package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cyclopcam/logs"
	"github.com/emoset/emoset/dataset"
	"github.com/spf13/cobra"
)

const HelpBanner = `
┌─┐┌┬┐┌─┐┌─┐┌─┐┌┬┐
├┤ ││││ │└─┐├┤  │
└─┘┴ ┴└─┘└─┘└─┘ ┴

Facial expression dataset builder.
    Version: %s

`

// Version indicates the current build version.
var Version = "0.1.0"

var (
	// datasetPath is the CSV file records are appended to.
	datasetPath string
	// labelList overrides the emotion vocabulary.
	labelList string
	// dbURL is the connection string of the optional Postgres mirror.
	dbURL string

	logger logs.Log
	vocab  *dataset.Vocabulary
	mirror *dataset.PostgresMirror

	// lastCommand is used to label fatal errors.
	lastCommand string
)

var rootCmd = &cobra.Command{
	Use:           "emoset",
	Short:         "Build a labeled facial expression dataset from a camera or image files",
	Long:          fmt.Sprintf(HelpBanner, Version),
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lastCommand = cmd.Name()

		var err error
		if logger, err = logs.NewLog(); err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		datasetPath = resolveDatasetPath(datasetPath)
		vocab, err = resolveVocabulary(labelList)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if mirror != nil {
			// The command context may already be cancelled, closing still has to reach the server.
			mirror.Close(context.Background())
		}
		if logger != nil {
			logger.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&datasetPath, "out", "o", "", "Dataset CSV file (default: $EMOSET_DATASET or dataset.csv)")
	rootCmd.PersistentFlags().StringVar(&labelList, "labels", "", "Comma separated emotion vocabulary, the first seven names are fixed")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "PostgreSQL connection string of the record mirror (default: built from $POSTGRES_HOST when set)")
}

func commandName() string {
	if lastCommand == "" {
		return "emoset"
	}
	return lastCommand + " failed"
}

func resolveDatasetPath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("EMOSET_DATASET"); env != "" {
		return env
	}
	return "dataset.csv"
}

func resolveVocabulary(list string) (*dataset.Vocabulary, error) {
	if strings.TrimSpace(list) == "" {
		return dataset.DefaultVocabulary(), nil
	}
	return dataset.ParseVocabulary(list)
}

// resolveDBURL returns the mirror connection string, or "" when no mirror is configured.
func resolveDBURL(flag string) string {
	if flag != "" {
		return flag
	}
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"), host, port, os.Getenv("POSTGRES_DB"))
}

// newEncoder returns the dataset encoder, mirrored to Postgres when a database is configured.
func newEncoder(ctx context.Context) (*dataset.Encoder, error) {
	enc := dataset.NewEncoder(datasetPath, vocab)

	url := resolveDBURL(dbURL)
	if url == "" {
		return enc, nil
	}
	m, err := dataset.NewPostgresMirror(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	mirror = m
	enc.Mirror = m
	logger.Infof("Mirroring records to PostgreSQL")
	return enc, nil
}
