package main

import (
	"os"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"

	boshapp "github.com/cloudfoundry/bundle-agent/app"
)

const mainLogTag = "main"

func main() {
	logger := boshlog.NewLogger(boshlog.LevelError)
	defer logger.HandlePanic("Main")

	app := boshapp.New(os.Stdout, os.Stderr)

	err := app.Run(os.Args[1:])
	if err != nil {
		logger.Error(mainLogTag, "%s", err.Error())
		os.Exit(1)
	}
}
