package main

import (
	"flag"

	"omnikassa/config"
	"omnikassa/internal"
	"omnikassa/services"
)

func main() {

	logger := internal.NewLogger("internal", false, nil)

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	logger.Info("using config file: " + *configPath)
	conf, err := config.GetConfig(*configPath)
	if err != nil {
		logger.Error("boot", err)
		return
	}

	var mongo services.Database
	if conf.Mongo.Enabled {
		mongo, err = internal.NewMongoClient(conf)
		if err != nil {
			logger.Error("mongo client", err)
			return
		}
		logger.Info("mongo client initialized")
	}

	metrics := internal.NewMetrics()

	payments := internal.NewPayments(conf)
	payments.SetLogger(internal.NewFileLogger("payments", conf, mongo))
	payments.SetDatabase(mongo)
	payments.SetMetrics(metrics)

	server := internal.NewServer(conf, metrics)
	server.SetLogger(internal.NewFileLogger("server", conf, mongo))
	server.SetPaymentsService(payments)

	err = server.Start()
	if err != nil {
		logger.Error("server start", err)
		return
	}

}
