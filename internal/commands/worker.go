package commands

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/property-backoffice/internal/queue"
)

// WorkerCmd consumes queued notifications and hands them to the SMS and
// email senders.
func WorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Deliver queued notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.RabbitMQ.Enabled() {
				return errors.New("worker requires RABBITMQ_URL")
			}
			if n, _ := cmd.Flags().GetInt("prefetch"); n > 0 {
				cfg.RabbitMQ.Prefetch = n
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			l := newLogger("worker", cfg.App.Env)

			c := queue.NewConsumer(queue.ConsumerConfig{
				URL:         cfg.RabbitMQ.URL,
				Topology:    topology(cfg.RabbitMQ),
				MaxAttempts: cfg.RabbitMQ.MaxAttempts,
				Prefetch:    cfg.RabbitMQ.Prefetch,
			}, directSender(cfg, l), l)
			l.Infof("consuming %s", cfg.RabbitMQ.Queue)
			return c.Run(ctx)
		},
	}
	cmd.Flags().Int("prefetch", 0, "Unacked deliveries per worker (overrides RABBITMQ_PREFETCH)")
	return cmd
}
