package main

import (
	"encoding/json"
	"strings"

	"github.com/aretw0/carebot/pkg/catalog"
	"github.com/aretw0/carebot/pkg/domain"
	"github.com/aretw0/carebot/pkg/intent"
	"github.com/spf13/cobra"
)

type classification struct {
	Message string           `json:"message"`
	Intent  domain.Intent    `json:"intent"`
	Reply   string           `json:"reply"`
	Context domain.FlowState `json:"context"`
}

var classifyCmd = &cobra.Command{
	Use:   "classify [message]",
	Short: "Classify one message without storing anything",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.Default()
		if path, _ := cmd.Flags().GetString("catalog"); path != "" {
			var err error
			if cat, err = catalog.Load(path); err != nil {
				return err
			}
		}

		h := intent.NewHandler(intent.WithCatalog(cat))
		if checkIn, _ := cmd.Flags().GetBool("check-in"); checkIn {
			h.CheckInFlow()
		}

		msg := strings.Join(args, " ")
		reply := h.HandleMessage(msg)
		in, _ := h.LastIntent()

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(classification{Message: msg, Intent: in, Reply: reply, Context: h.Flow()})
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().Bool("check-in", false, "Start from the CheckIn flow")
	classifyCmd.Flags().String("catalog", "", "Reply catalog YAML file")
}
