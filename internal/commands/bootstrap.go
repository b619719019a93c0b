// Package commands defines the cobra command tree of the back-office
// binary and the wiring shared by its commands.
package commands

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"

	"github.com/iliyamo/property-backoffice/internal/config"
	"github.com/iliyamo/property-backoffice/internal/database"
	"github.com/iliyamo/property-backoffice/internal/notify"
	"github.com/iliyamo/property-backoffice/internal/queue"
	"github.com/iliyamo/property-backoffice/internal/repository"
	"github.com/iliyamo/property-backoffice/internal/repository/memory"
	"github.com/iliyamo/property-backoffice/internal/repository/mongostore"
)

func newLogger(prefix, env string) *log.Logger {
	l := log.New(prefix)
	if env == "dev" {
		l.SetLevel(log.DEBUG)
	} else {
		l.SetLevel(log.INFO)
	}
	return l
}

// openStore connects the backend selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg config.Config, l *log.Logger) (*repository.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMySQL:
		db, err := database.Open(cfg.DB)
		if err != nil {
			return nil, err
		}
		l.Infof("store: mysql %s:%s/%s", cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
		return repository.NewMySQLStore(db), nil
	case config.DriverMongo:
		db, err := database.OpenMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = db.Client().Disconnect(ctx)
			return nil, err
		}
		l.Infof("store: mongo database %s", cfg.Mongo.Database)
		return mongostore.NewStore(db), nil
	case config.DriverMemory:
		l.Warnf("store: in-memory, data is lost on exit")
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// directSender talks to the gateways.  A channel without configuration
// falls back to the console notifier.
func directSender(cfg config.Config, l *log.Logger) notify.Notifier {
	console := notify.NewConsole(l)
	r := &notify.Router{SMS: console, Email: console}
	if cfg.SMS.GatewayURL != "" {
		r.SMS = notify.NewSMSClient(cfg.SMS.GatewayURL, cfg.SMS.User, cfg.SMS.Pass, cfg.SMS.Timeout)
	}
	if cfg.SMTP.Host != "" {
		r.Email = notify.NewMailer(notify.MailerConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}
	return r
}

func topology(cfg config.RabbitMQConfig) queue.Topology {
	return queue.Topology{Exchange: cfg.Exchange, Queue: cfg.Queue, RetryDelay: cfg.RetryDelay}
}

// apiNotifier is the notifier handed to the workflows: the queue publisher
// when a broker is configured, otherwise the direct senders.  The returned
// close func releases the publisher.
func apiNotifier(cfg config.Config, l *log.Logger) (notify.Notifier, func() error) {
	if cfg.RabbitMQ.Enabled() {
		p := queue.NewPublisher(cfg.RabbitMQ.URL, topology(cfg.RabbitMQ), l)
		l.Infof("notifications: queued via exchange %s", cfg.RabbitMQ.Exchange)
		return p, p.Close
	}
	l.Infof("notifications: sent inline")
	return directSender(cfg, l), func() error { return nil }
}
