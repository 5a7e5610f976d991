package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	mongostore "github.com/sngm3741/contact-site/internal/infrastructure/mongo"
	publicapp "github.com/sngm3741/contact-site/internal/public/application"
)

var sampleSubmissions = []publicapp.SubmitContactCommand{
	{Name: "Alice Example", Email: "alice@example.com", Message: "Could you send me a quote for a small marketing site?"},
	{Name: "Bob Example", Email: "bob@example.com", Message: "Do you maintain existing Go services?"},
	{Name: "Carol Example", Email: "carol@example.com", Message: "We would like to talk about a redesign next quarter."},
	{Name: "Dave Example", Email: "dave@example.com", Message: "Is there a contact phone number?"},
}

// seedSamples submits count sample messages through the contact use-case.
func seedSamples(ctx context.Context, svc publicapp.ContactCommandService, count int) (int, error) {
	for i := 0; i < count; i++ {
		cmd := sampleSubmissions[i%len(sampleSubmissions)]
		if _, err := svc.Submit(ctx, cmd); err != nil {
			return i, err
		}
	}
	return count, nil
}

func newSeedCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample contact messages into MongoDB",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := commandLogger(cmd, v)
			count, _ := cmd.Flags().GetInt("count")
			if count <= 0 {
				return fmt.Errorf("--count must be positive")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			client, err := mongostore.Connect(ctx, v.GetString("mongo-uri"), 10*time.Second)
			if err != nil {
				return err
			}
			defer func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Error().Err(err).Msg("MongoDB 切断時にエラー")
				}
			}()

			repo := mongostore.NewMessageRepository(client.Database(v.GetString("mongo-db")), v.GetString("collection"))
			if err := repo.EnsureIndexes(ctx); err != nil {
				return err
			}
			n, err := seedSamples(ctx, publicapp.NewContactCommandService(repo), count)
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d contact messages\n", n)
			return err
		},
	}

	cmd.Flags().Int("count", len(sampleSubmissions), "number of messages to insert")
	cmd.Flags().String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
	cmd.Flags().String("mongo-db", "contact-site", "MongoDB database")
	cmd.Flags().String("collection", "contact_messages", "message collection")
	for _, key := range []string{"mongo-uri", "mongo-db", "collection"} {
		_ = v.BindPFlag(key, cmd.Flags().Lookup(key))
	}
	_ = v.BindEnv("mongo-uri", "MONGO_URI")
	_ = v.BindEnv("mongo-db", "MONGO_DB")
	_ = v.BindEnv("collection", "MESSAGE_COLLECTION")
	return cmd
}
