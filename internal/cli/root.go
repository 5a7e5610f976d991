// Package cli implements contactctl, the operator command line for the contact site.
//
// Flags can also be supplied through the environment:
//
//	CONTACT_ENDPOINT  submit endpoint URL
//	MONGO_URI         MongoDB connection string for seed
//	MONGO_DB          MongoDB database for seed
//	LOG_LEVEL         zerolog level
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sngm3741/contact-site/internal/logger"
)

// NewRootCmd builds the contactctl command tree around its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "contactctl",
		Short:         "Drive and seed the contact form backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindEnv("log-level", "LOG_LEVEL")

	root.AddCommand(newSubmitCmd(v), newSeedCmd(v))
	return root
}

// Execute runs contactctl with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func commandLogger(cmd *cobra.Command, v *viper.Viper) zerolog.Logger {
	opts := logger.OptionsFromEnv()
	opts.Level = v.GetString("log-level")
	opts.Format = "console"
	return logger.New(cmd.ErrOrStderr(), opts)
}
