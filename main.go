package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"reels/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
