package main

import (
	"fmt"

	httpAdapter "github.com/aretw0/carebot/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a user",
	Long:  `Signs an HS256 token with JWT_SECRET for local testing of the API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("store") {
			cmd.Flags().Set("store", "memory")
		}
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		uid, _ := cmd.Flags().GetString("uid")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		tok, err := httpAdapter.IssueToken([]byte(cfg.JWTSecret), uid, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("uid", "", "User id to embed in the token")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (0 = no expiry)")
	tokenCmd.MarkFlagRequired("uid")
}
