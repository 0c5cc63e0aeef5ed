package main

import (
	"context"

	"github.com/aretw0/carebot/internal/cli"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the bot from the terminal",
	Long:  `Reads one message per line from stdin and prints each reply. Type "exit" or "quit" to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("store") {
			cmd.Flags().Set("store", "memory")
		}
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app, err := cli.NewApp(cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		uid, _ := cmd.Flags().GetString("uid")
		checkIn, _ := cmd.Flags().GetBool("check-in")
		jsonMode, _ := cmd.Flags().GetBool("json")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.RunChat(sigCtx, app.Manager, cmd.InOrStdin(), cmd.OutOrStdout(), cli.ChatOptions{
			UserID:  uid,
			CheckIn: checkIn,
			JSON:    jsonMode,
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().String("uid", "cli", "User id whose flow is used")
	chatCmd.Flags().Bool("check-in", false, "Open with a check-in prompt")
	chatCmd.Flags().Bool("json", false, "Read and write NDJSON")
}
