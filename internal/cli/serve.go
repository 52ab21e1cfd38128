package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pawlygon/shapekit/internal/server"
	"github.com/pawlygon/shapekit/pkg/ops"
	"github.com/pawlygon/shapekit/pkg/pending"
	"github.com/pawlygon/shapekit/pkg/scene/store"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		mongoURI  string
		mongoDB   string
		redisAddr string
		redisDB   int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the shapekit HTTP API",
		Long: `Serve exposes scene storage and the shapekey operators over HTTP.

Scenes default to in-memory storage; pass --mongo to persist them in
MongoDB. Pending check reports default to in-memory storage; pass
--redis to share them across instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			scenes, err := newSceneStore(ctx, mongoURI, mongoDB)
			if err != nil {
				return err
			}
			defer scenes.Close(context.Background())

			reports, err := newPendingStore(ctx, redisAddr, redisDB)
			if err != nil {
				return err
			}
			defer reports.Close()

			rosters, err := c.loadRosters()
			if err != nil {
				return err
			}

			srv := server.New(scenes, ops.NewRunner(reports, rosters), c.Logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for scene storage (default: in-memory)")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "shapekit", "MongoDB database name")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for pending reports (default: in-memory)")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database number")

	return cmd
}

func newSceneStore(ctx context.Context, mongoURI, mongoDB string) (store.Store, error) {
	if mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI, Database: mongoDB})
}

func newPendingStore(ctx context.Context, redisAddr string, redisDB int) (pending.Store, error) {
	if redisAddr == "" {
		return pending.NewMemoryStore(), nil
	}
	return pending.NewRedisStore(ctx, pending.RedisConfig{Addr: redisAddr, DB: redisDB})
}
