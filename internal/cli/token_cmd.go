package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/daybook/internal/httpapi"
	"github.com/spf13/cobra"
)

func newTokenCmd(app *App) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.JWTSecret == "" {
				return errors.New("http.jwt_secret is not set; the API is unauthenticated")
			}
			tok, err := httpapi.IssueToken([]byte(app.JWTSecret), subject, ttl, app.now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "daybook", "Token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "Token lifetime")
	return cmd
}
