package main

import (
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"

	config "github.com/harukin/binder-services/configs"
	bindercfg "github.com/harukin/binder-services/internal/bindersvc/config"
	"github.com/harukin/binder-services/internal/bindersvc/db"
	"github.com/harukin/binder-services/internal/comm"
	mongodb "github.com/harukin/binder-services/internal/db"
	nats "github.com/harukin/binder-services/internal/nats"
	"github.com/harukin/binder-services/internal/syncsvc/broker"
	"github.com/harukin/binder-services/internal/syncsvc/importer"
	"github.com/harukin/binder-services/internal/syncsvc/jobs"
	"github.com/harukin/binder-services/internal/syncsvc/scraper"
	"github.com/harukin/binder-services/internal/syncsvc/store"
)

const SERVICE_NAME = "sync"

func init() {
	instanceId := config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	cfg := bindercfg.Load()

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	// mongo for sync job history
	mongo, cancelMongo, err := mongodb.ConnectToDB()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer cancelMongo()

	jobStore, err := jobs.NewJobStore(mongo)
	if err != nil {
		log.Fatalf("Failed to init sync job store: %v", err)
	}

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	scraperClient := scraper.NewClient(cfg.ScraperURL)
	catalogStore := store.NewCatalogStore(dbpool)
	im := importer.New(scraperClient, catalogStore, jobStore)

	b := broker.NewBroker(n.Conn, im)
	sub, err := b.SubscribeSyncCommands(comm.TopicSyncCommand)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}

	log.Infof("%s service waiting for catalog sync commands", SERVICE_NAME)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
