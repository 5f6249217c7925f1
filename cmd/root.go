package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kwrelay-bot",
	Short: "kwrelay-bot",
	Run: func(cmd *cobra.Command, args []string) {
		Run(cmd.Context())
	},
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
	}
}
