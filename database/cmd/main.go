package main

import (
	"os"

	"undangan.link/configs/configslog"
	"undangan.link/database"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	if err := database.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
