package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"pfeifer.dev/drived/params"
	ms "pfeifer.dev/drived/settings"
)

// RunOptions configures the daemon started by the default action.
type RunOptions struct {
	RouteFile string
}

// Handle parses the command line. Subcommands run to completion and exit
// the process; run reports whether the caller should start the daemon.
func Handle(ctx context.Context) (opts RunOptions, run bool) {
	cmd := &cli.Command{
		Name:  "drived",
		Usage: "Publish the lookahead window of a reference route and gate actuator commands on dbw authority",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "params-path",
				Usage: "Directory holding the params store",
				Value: params.ParamsPath,
			},
			&cli.StringFlag{
				Category: "Inputs and Outputs",
				Name:     "route-file",
				Aliases:  []string{"r"},
				Usage:    "CSV route to load at startup and reload whenever it changes",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			params.ParamsPath = cmd.String("params-path")
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "load-route",
				Aliases:   []string{"l"},
				Usage:     "Publish a CSV route as the reference route of a running daemon",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "velocity",
						Usage: "Target velocity in m/s for rows without a velocity column",
						Value: -1,
					},
					&cli.BoolFlag{
						Name:  "remember",
						Usage: "Store the file as the route the daemon loads on its next start",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						return cli.Exit("load-route needs a FILE", 1)
					}
					return loadRoute(path, cmd.Float64("velocity"), cmd.Bool("remember"))
				},
			},
			{
				Name:    "import-osm",
				Aliases: []string{"o"},
				Usage:   "Build a CSV route from a single way of an open street maps pbf file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Category: "Inputs and Outputs",
						Name:     "input-file",
						Aliases:  []string{"i"},
						Usage:    "The open street maps pbf file to read the way from",
						Value:    "./map.osm.pbf",
					},
					&cli.Int64Flag{
						Name:     "way",
						Aliases:  []string{"w"},
						Usage:    "ID of the way to follow",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "velocity",
						Usage: "Target velocity in m/s, the way's maxspeed tag is used when not positive",
						Value: 0,
					},
					&cli.StringFlag{
						Category: "Inputs and Outputs",
						Name:     "output",
						Aliases:  []string{"out"},
						Usage:    "Where to write the route, - for stdout",
						Value:    "-",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return importOSM(ctx, cmd.String("input-file"), cmd.Int64("way"), cmd.Float64("velocity"), cmd.String("output"))
				},
			},
			{
				Name:      "authority",
				Aliases:   []string{"a"},
				Usage:     "Grant or withhold drive-by-wire authority",
				ArgsUsage: "[on|off]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return authority(cmd.Args().First())
				},
			},
			{
				Name:        "pose",
				Usage:       "Publish a single vehicle pose, for bench testing without a localizer",
				ArgsUsage:   "X Y [Z [YAW]]",
				Description: "Put -- before the values when any of them is negative.",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return injectPose(cmd.Args().Slice())
				},
			},
			{
				Name:        "twist",
				Usage:       "Publish a target velocity, or with --current a measured one",
				ArgsUsage:   "LINEAR [ANGULAR]",
				Description: "Put -- before the values when any of them is negative.",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "current",
						Usage: "Publish on the measured velocity topic instead of the command topic",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return injectTwist(cmd.Args().Slice(), cmd.Bool("current"))
				},
			},
			{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Watch and steer an active drived instance",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					interactive()
					return nil
				},
			},
			{
				Name:  "settings",
				Usage: "Inspect or reset the stored settings",
				Commands: []*cli.Command{
					{
						Name:  "show",
						Usage: "Print the stored settings, defaults filled in",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return printSettings(os.Stdout)
						},
					},
					{
						Name:  "reset",
						Usage: "Overwrite the stored settings with the defaults",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							s := ms.DriveSettings{}
							s.Default()
							s.Save()
							fmt.Println("settings reset to defaults")
							return nil
						},
					},
					{
						Name:  "params",
						Usage: "List every param in the params store",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return listParams(os.Stdout)
						},
					},
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts.RouteFile = cmd.String("route-file")
			run = true
			return nil
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
	return opts, run
}
