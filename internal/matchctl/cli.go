package matchctl

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"matchd/pkg/types"
)

func printMatch(m types.Match) {
	fmt.Printf("%s  %s vs %s  %d-%d  [%s]\n", m.ID, m.TeamA, m.TeamB, m.Score.A, m.Score.B, m.Status)
}

func printEvent(ev types.MatchEvent) {
	if ev.Details != "" {
		fmt.Printf("%s  %-13s  %s\n", ev.Timestamp.Format("15:04:05"), ev.Type, ev.Details)
		return
	}
	fmt.Printf("%s  %s\n", ev.Timestamp.Format("15:04:05"), ev.Type)
}

// BuildRootCmd constructs the matchctl command tree.
func BuildRootCmd() *cobra.Command {
	defaultAddr := "http://127.0.0.1:8000"
	if v := os.Getenv("MATCHD_ADDR"); v != "" {
		defaultAddr = v
	}
	var addr string
	root := &cobra.Command{
		Use:           "matchctl",
		Short:         "Operator CLI for the matchd live match tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&addr, "addr", defaultAddr, "Base URL of the matchd server (defaults MATCHD_ADDR)")
	client := func() *Client { return NewClient(addr) }

	root.AddCommand(&cobra.Command{
		Use:     "create <teamA> <teamB>",
		Short:   "Create a scheduled match",
		Example: "  matchctl create \"Real Madrid\" \"Barcelona\"",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := client().CreateMatch(args[0], args[1])
			if err != nil {
				return err
			}
			printMatch(m)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Create the sample fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := client().Seed()
			if err != nil {
				return err
			}
			for _, m := range ms {
				printMatch(m)
			}
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "start <id>",
		Short: "Start a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := client().StartMatch(args[0])
			if err != nil {
				return err
			}
			printMatch(m)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "stop <id>",
		Short: "End a live match immediately",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return client().StopMatch(args[0])
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := client().ListMatches()
			if err != nil {
				return err
			}
			for _, m := range ms {
				printMatch(m)
			}
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := client().GetMatch(args[0])
			if err != nil {
				return err
			}
			printMatch(m)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "events <id>",
		Short: "Print a match's recorded event history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			evs, err := client().MatchEvents(args[0])
			if err != nil {
				return err
			}
			for _, ev := range evs {
				printEvent(ev)
			}
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "watch <id>",
		Short: "Follow a match's event stream (replay, then live)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return client().Watch(args[0], func(ev types.MatchEvent) error {
				printEvent(ev)
				return nil
			})
		},
	})

	return root
}
