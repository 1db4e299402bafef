package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Jakob-W-Lucas/Project-Beagle/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "beagle",
		Short: "Hierarchical room and station navigation engine",
	}

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(routesCmd())
	rootCmd.AddCommand(travelCmd())
	rootCmd.AddCommand(locateCmd())
	rootCmd.AddCommand(nearestCmd())
	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a level and report routing problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func routesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes [project-path]",
		Short: "Precompute the global route table and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRoutes(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print stats and the scene graph as JSON")
	return cmd
}

func travelCmd() *cobra.Command {
	var opts travelOptions

	cmd := &cobra.Command{
		Use:   "travel [project-path]",
		Short: "Plan a route to a room or station",
		Example: `  beagle travel examples/office --from lobby_e --station desk
  beagle travel examples/office --agent ada --room office --by-name`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTravel(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "start vertex name")
	cmd.Flags().StringVar(&opts.agent, "agent", "", "start from this agent's position")
	cmd.Flags().StringVar(&opts.room, "room", "", "room type to travel to")
	cmd.Flags().StringVar(&opts.station, "station", "", "station type to travel to")
	cmd.Flags().BoolVar(&opts.byName, "by-name", false, "treat --room/--station as a name instead of a type")
	cmd.MarkFlagsMutuallyExclusive("from", "agent")
	cmd.MarkFlagsOneRequired("from", "agent")
	cmd.MarkFlagsMutuallyExclusive("room", "station")
	cmd.MarkFlagsOneRequired("room", "station")
	return cmd
}

func locateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate [project-path] [x] [y]",
		Short: "Find the edge or junction under a point",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			return runLocate(args[0], args[1], args[2])
		},
	}
}

func nearestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nearest [project-path] [x] [y]",
		Short: "Find the interior vertex closest to a point",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			return runNearest(args[0], args[1], args[2])
		},
	}
}

func simulateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "simulate [project-path]",
		Short: "Run every agent's errands and print what happens",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSimulate(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON step per line")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			srv := server.New(args[0], port, nil)
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
