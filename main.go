package main

import (
	"flag"
	_ "net/http/pprof"

	"github.com/locey/MemoryBadges/BadgeEnd/api/router"
	"github.com/locey/MemoryBadges/BadgeEnd/app"
	"github.com/locey/MemoryBadges/BadgeEnd/config"
	"github.com/locey/MemoryBadges/BadgeEnd/service/svc"
)

const (
	defaultConfigPath = "./config/config.toml"
)

func main() {
	conf := flag.String("conf", defaultConfigPath, "conf file path")
	flag.Parse()
	c, err := config.UnmarshalConfig(*conf)
	if err != nil {
		panic(err)
	}

	for _, chain := range c.ChainSupported {
		if chain.ChainID == 0 || chain.Name == "" {
			panic("invalid chain_supported config")
		}
	}

	serverCtx, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}

	r := router.NewRouter(serverCtx)
	app, err := app.NewPlatform(c, r, serverCtx)
	if err != nil {
		panic(err)
	}
	app.Start()
}
