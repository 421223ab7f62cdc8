package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	auditpg "github.com/strogmv/chatpush/internal/adapter/audit/postgres"
	directorypg "github.com/strogmv/chatpush/internal/adapter/directory/postgres"
	"github.com/strogmv/chatpush/internal/adapter/directory/rediscache"
	"github.com/strogmv/chatpush/internal/adapter/payments/stripe"
	"github.com/strogmv/chatpush/internal/adapter/push/httppush"
	"github.com/strogmv/chatpush/internal/config"
	"github.com/strogmv/chatpush/internal/port"
	"github.com/strogmv/chatpush/internal/service"
)

// Container wires platform clients and services once at startup. Everything
// here lives for the whole process and is injected downward; nothing is
// reached for as an ambient global.
type Container struct {
	Config *config.Config

	Directory port.Directory
	AuditLog  port.AuditLog
	Push      port.PushSender

	AuditSource port.AuditArchiveSource

	SvcFanout   port.Fanout
	SvcPayments port.Payments
}

func NewContainer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client) (*Container, error) {
	_ = ctx
	c := &Container{
		Config: cfg,
	}

	auditLog := auditpg.NewLog(pool)
	c.AuditLog = auditLog
	c.AuditSource = auditLog

	c.Directory = directorypg.NewStore(pool)
	if rdb != nil {
		c.Directory = rediscache.New(c.Directory, rdb, cfg.DirectoryCacheTTL)
	}

	c.Push = httppush.New(cfg.PushGatewayURL, cfg.PushAPIToken, cfg.CallTimeout)

	c.SvcFanout = service.NewFanoutImpl(c.Directory, c.AuditLog, c.Push, cfg.CallTimeout)
	c.SvcPayments = service.NewPaymentImpl(stripe.New(cfg.StripeSecretKey))

	return c, nil
}
