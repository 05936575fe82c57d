package main

import (
	"PresenceCoach/pkg/log"
	"context"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "batch",
	Short:   "Offline presentation feedback for directories of frames",
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()

		logger := log.NewLogger()
		if os.Getenv("LOG_LEVEL") == "" {
			logger.SetLevel(logrus.WarnLevel)
		}
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
