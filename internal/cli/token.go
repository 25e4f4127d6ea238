package cli

import (
	"errors"
	"fmt"
	"time"

	"quizapp_backend/internal/config"
	"quizapp_backend/internal/util"

	"github.com/spf13/cobra"
)

// NewTokenCmd 本地开发用：签发指定用户的令牌
func NewTokenCmd(configPath *string) *cobra.Command {
	var (
		userID string
		expire time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed development token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return errors.New("--user is required")
			}
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			if expire <= 0 {
				expire = cfg.JWT.ExpireTime
			}
			token, err := util.GenerateJWT(userID, cfg.JWT.Secret, expire)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id placed in the user_id claim")
	cmd.Flags().DurationVar(&expire, "expire", 0, "token lifetime (defaults to jwt.expire_hours)")
	return cmd
}
