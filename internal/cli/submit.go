package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sngm3741/contact-site/internal/site"
)

// flagForm serves the contact fields from command line values.
type flagForm struct {
	values map[string]string
}

func (f *flagForm) Value(name string) string { return f.values[name] }

func (f *flagForm) Reset() {
	for k := range f.values {
		f.values[k] = ""
	}
}

// lineStatus prints every non-empty status text on its own line.
type lineStatus struct {
	w io.Writer
}

func (s lineStatus) SetText(text string) {
	if text != "" {
		fmt.Fprintln(s.w, text)
	}
}

// holdClock never fires; the process exits before any status would be cleared.
type holdClock struct{}

func (holdClock) AfterFunc(time.Duration, func()) {}

func newSubmitCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Post one contact submission the way the site form does",
		RunE: func(cmd *cobra.Command, _ []string) error {
			endpoint := v.GetString("endpoint")
			if endpoint == "" {
				return fmt.Errorf("--endpoint (or CONTACT_ENDPOINT) is required")
			}
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			message, _ := cmd.Flags().GetString("message")
			timeout := v.GetDuration("timeout")

			submitter := site.NewSubmitter(site.SubmitterConfig{
				Endpoint: endpoint,
				Client:   &http.Client{Timeout: timeout},
				Form: &flagForm{values: map[string]string{
					site.FieldName:    name,
					site.FieldEmail:   email,
					site.FieldMessage: message,
				}},
				Status: lineStatus{w: cmd.OutOrStdout()},
				Clock:  holdClock{},
				Logger: commandLogger(cmd, v),
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			res := submitter.Submit(ctx)
			if res.Outcome != site.OutcomeSaved {
				return fmt.Errorf("submission %s: %w", res.Outcome, res.Err)
			}
			return nil
		},
	}

	cmd.Flags().String("endpoint", "", "contact endpoint URL")
	cmd.Flags().String("name", "", "sender name")
	cmd.Flags().String("email", "", "sender email")
	cmd.Flags().String("message", "", "message body")
	cmd.Flags().Duration("timeout", 10*time.Second, "request timeout")
	_ = v.BindPFlag("endpoint", cmd.Flags().Lookup("endpoint"))
	_ = v.BindEnv("endpoint", "CONTACT_ENDPOINT")
	_ = v.BindPFlag("timeout", cmd.Flags().Lookup("timeout"))
	return cmd
}
