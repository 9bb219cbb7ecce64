package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	grpcapi "simple-notes-manager/internal/api/grpc"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print note change events until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withClient(func(client *grpcapi.Client) error {
			stream, err := client.WatchNotes(ctx)
			if err != nil {
				return err
			}

			for {
				event, err := stream.Recv()
				switch {
				case err == nil:
					if err := printJSON(event); err != nil {
						return err
					}
				case errors.Is(err, io.EOF), status.Code(err) == codes.Canceled:
					return nil
				default:
					return err
				}
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
