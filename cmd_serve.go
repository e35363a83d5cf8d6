package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"greenbloom/chat"
	"greenbloom/controllers"
	"greenbloom/jobs"
	"greenbloom/routes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server and its background jobs",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := boot(ctx)
	if err != nil {
		return err
	}
	defer svc.close()
	cfg := svc.cfg

	loc := cfg.TimeLocation()
	now := func() time.Time { return time.Now().In(loc) }

	hub := chat.NewHub(cfg.ChatReplyDelay())
	h := controllers.NewHandler(svc.store, svc.plants, hub, svc.mailer, now)

	reminders, err := jobs.NewReminders(svc.store, svc.mailer, now)
	if err != nil {
		return err
	}
	sched, err := jobs.New(cfg.Reminders, loc, reminders, hub, cfg.ChatIdleTTL())
	if err != nil {
		return err
	}
	sched.Start()

	app := routes.NewApp(h, routes.AppOptions{
		AllowOrigins:  cfg.Server.AllowOrigins,
		StaticDir:     cfg.Server.StaticDir,
		VisitorSecret: cfg.Visitor.Secret,
		VisitorTTL:    cfg.VisitorTTL(),
	})

	errc := make(chan error, 1)
	go func() {
		zap.S().Infof("listening on %s", cfg.Server.Addr)
		errc <- app.Listen(cfg.Server.Addr)
	}()

	select {
	case err = <-errc:
	case <-ctx.Done():
		zap.L().Info("shutting down")
		err = app.ShutdownWithTimeout(10 * time.Second)
	}

	<-sched.Stop().Done()
	hub.Wait()
	return err
}
