package main

import (
	"log"
	"os"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	logsvc "github.com/MDharunPrasad/giglabs-intern-venture/services/logger"
	"github.com/MDharunPrasad/giglabs-intern-venture/storage"
)

func main() {
	conf := core.NewConfig()

	zl, err := logsvc.NewZap(conf.Env)
	if err != nil {
		log.Fatalf("setting up zap: %v", err)
	}
	logger := logsvc.NewZapLogger(zl.Named("admin"))

	// set up storage
	repos, err := storage.Open(conf)
	if err != nil {
		logger.Fatal("setting up storage", err)
	}

	// start CLI
	cli := commandLine{
		db:      repos.DB,
		usrRepo: repos.Users,
	}
	err = cli.run(os.Args)
	_ = repos.Close()
	_ = zl.Sync()
	if err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		os.Exit(1)
	}
}
