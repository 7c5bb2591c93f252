package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"shopapi/pkg/domain/service"
	"shopapi/pkg/domain/store"
	"shopapi/pkg/eventlog"
	"shopapi/pkg/seed"
	"shopapi/transport/rest"
	"shopapi/transport/rpc"
	"shopapi/transport/rpc/pb"
)

const appID = "shopapi"

type config struct {
	HTTPPort  string `envconfig:"http_port" default:"8080"`
	GRPCPort  string `envconfig:"grpc_port" default:"8082"`
	LogLevel  string `envconfig:"log_level" default:"info"`
	LogFormat string `envconfig:"log_format" default:"json"`
}

func main() {
	app := &cli.App{
		Name:  appID,
		Usage: "user and product CRUD API served over REST and gRPC",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "seed-file",
				Usage: "path to a JSON file with startup fixtures",
			},
		},
		Action: runApp,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("application stopped")
	}
}

func runApp(c *cli.Context) error {
	_ = godotenv.Load()

	var cfg config
	if err := envconfig.Process(appID, &cfg); err != nil {
		return errors.Wrap(err, "parse environment")
	}
	setupLogger(cfg)

	dispatcher := eventlog.NewDispatcher()
	users := service.NewUserService(store.NewUserStore(), dispatcher)
	products := service.NewProductService(store.NewProductStore(), dispatcher)

	if path := c.String("seed-file"); path != "" {
		seeded, err := seed.Load(path, users, products)
		switch {
		case os.IsNotExist(errors.Cause(err)):
			log.WithField("path", path).Warn("seed file not found, starting empty")
		case err != nil:
			return errors.Wrap(err, "load seed file")
		default:
			log.WithFields(log.Fields{"path": path, "entities": seeded}).Info("seeded stores")
		}
	}

	httpSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: rest.Router(users, products),
	}

	grpcSrv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		rpc.UnaryLogger(),
		rpc.UnaryRecovery(),
	))
	pb.RegisterUserServiceServer(grpcSrv, rpc.NewUserServer(users))
	pb.RegisterProductServiceServer(grpcSrv, rpc.NewProductServer(products))

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("shopapi.UserService", healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus("shopapi.ProductService", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		log.WithField("addr", httpSrv.Addr).Info("starting HTTP server")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			return errors.Wrap(err, "listen grpc")
		}
		log.WithField("addr", lis.Addr().String()).Info("starting gRPC server")
		return grpcSrv.Serve(lis)
	})

	g.Go(func() error {
		select {
		case killSignal := <-getKillSignalChan():
			switch killSignal {
			case os.Interrupt:
				log.Info("Got SIGINT...")
			case syscall.SIGTERM:
				log.Info("Got SIGTERM...")
			}
		case <-ctx.Done():
		}

		grpcSrv.GracefulStop()
		return httpSrv.Shutdown(context.Background())
	})

	return g.Wait()
}

func setupLogger(cfg config) {
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}
