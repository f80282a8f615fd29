package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/campushub/support-service/apps/api/echo"
	"github.com/campushub/support-service/core"
	"github.com/campushub/support-service/core/support"
	"github.com/campushub/support-service/services/directory"
	"github.com/campushub/support-service/services/email"
	"github.com/campushub/support-service/services/logger"
	"github.com/campushub/support-service/services/notification"
	"github.com/campushub/support-service/storage/database"
	"github.com/campushub/support-service/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	wd, err := os.Getwd()
	errAndDie(std, err)
	conf, err := core.LoadConfig(wd)
	errAndDie(std, err)

	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(std, err)
	defer func() { _ = db.Close() }()
	errAndDie(std, db.Ping())

	// set up services
	var mailSvc core.EmailService
	var notifier core.NotificationService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
		notifier = notifsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
		amqpSvc, err := notifsvc.NewAMQPService(conf)
		errAndDie(std, err)
		defer func() { _ = amqpSvc.Close() }()
		notifier = amqpSvc
	}
	dirSvc := directorysvc.NewHTTPService(conf, logger)
	supSvc := support.NewService(conf, sqlxrepos.NewSupportRepository(db, conf.Database.Engine), dirSvc, notifier, mailSvc, logger)

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	app := echoapi.NewServer(
		fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port),
		shutdown,
		conf,
		&echoapi.Deps{
			Logger:     logger,
			SupportSvc: supSvc,
		},
	)
	go app.Start()

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err = app.Stop(ctx); err != nil {
		logger.Error("stopping server", err)
	}
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
