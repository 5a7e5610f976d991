package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/sngm3741/contact-site/internal/config"
	"github.com/sngm3741/contact-site/internal/infrastructure/awsclient"
	dynamostore "github.com/sngm3741/contact-site/internal/infrastructure/dynamodb"
	"github.com/sngm3741/contact-site/internal/infrastructure/email"
	mongostore "github.com/sngm3741/contact-site/internal/infrastructure/mongo"
	sitehttp "github.com/sngm3741/contact-site/internal/interfaces/http/site"
	"github.com/sngm3741/contact-site/internal/logger"
	"github.com/sngm3741/contact-site/internal/server"
)

func main() {
	log := logger.FromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("設定の読み込みに失敗")
	}
	log.Info().
		Str("store", cfg.StoreDriver).
		Str("mail", cfg.MailDriver).
		Bool("chat", cfg.ChatEnabled()).
		Strs("origins", cfg.AllowedOrigins).
		Msg("loaded config")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := buildDeps(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("依存の初期化に失敗")
	}

	app := server.New(cfg, deps, log)
	if err := app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("サーバー起動に失敗")
	}
}

func buildDeps(ctx context.Context, cfg config.Config, log zerolog.Logger) (server.Deps, error) {
	var deps server.Deps

	content, err := sitehttp.LoadContent(cfg.SiteContentPath)
	if err != nil {
		return deps, err
	}
	deps.Content = content

	if cfg.StoreDriver == config.StoreDynamoDB || cfg.MailDriver == config.MailSES {
		awsCfg, err := awsclient.LoadConfig(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
		if err != nil {
			return deps, err
		}
		if cfg.StoreDriver == config.StoreDynamoDB {
			client := dynamostore.NewClient(awsCfg, cfg.AWSEndpoint)
			repo := dynamostore.NewMessageRepository(client, cfg.TableName)
			deps.Messages = repo
			deps.AdminMessages = repo
			deps.Pinger = dynamostore.NewPinger(client, cfg.TableName)
			if cfg.FailedNotificationTable != "" {
				deps.Failures = dynamostore.NewFailedNotificationRepository(client, cfg.FailedNotificationTable)
			}
		}
		if cfg.MailDriver == config.MailSES {
			sender, err := email.NewSESSender(email.NewSESClient(awsCfg, cfg.AWSEndpoint), cfg.SenderEmail, log)
			if err != nil {
				return deps, err
			}
			deps.Mailer = sender
		}
	}

	if cfg.StoreDriver == config.StoreMongo {
		client, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.Timeout)
		if err != nil {
			return deps, err
		}
		db := client.Database(cfg.MongoDatabase)
		repo := mongostore.NewMessageRepository(db, cfg.MessageCollection)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("インデックス作成に失敗")
		}
		deps.Messages = repo
		deps.AdminMessages = repo
		deps.Failures = mongostore.NewFailedNotificationRepository(db, cfg.FailedNotificationCollection)
		deps.Pinger = mongostore.NewPinger(client)
		deps.Close = client.Disconnect
	}

	if deps.Mailer == nil {
		deps.Mailer = email.NewLogSender(log)
	}
	return deps, nil
}
