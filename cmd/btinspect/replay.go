package main

import (
	"fmt"

	"github.com/go-redis/redis/v7"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	bt "github.com/peterhyun/bt"
)

var (
	redisAddr string
	sessionID string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Print the history events recorded for a session over Redis",
	Long: `replay tails the operational log a RedisRecorder appended for one
EditorState session. This is a debugging aid, not a way to reconstruct tree
state — the core never reads this log back itself.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(sessionID)
		if err != nil {
			return fmt.Errorf("replay: parsing --session: %w", err)
		}

		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer client.Close()

		events, err := bt.ReplayRedisHistory(client, id)
		if err != nil {
			return err
		}

		for _, ev := range events {
			fmt.Printf("%s  %-6s %s\n", ev.Timestamp.Format("15:04:05.000"), ev.Action, ev.Command)
		}

		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&redisAddr, "redis", "localhost:6379", "redis server address")
	replayCmd.Flags().StringVar(&sessionID, "session", "", "session UUID to replay (see EditorState.SessionID)")
	_ = replayCmd.MarkFlagRequired("session")

	rootCmd.AddCommand(replayCmd)
}
