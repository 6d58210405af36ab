package main

import (
	"github.com/sirupsen/logrus"

	"github.com/pkgrepose/repose/internal/cli"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cli.Execute()
}
