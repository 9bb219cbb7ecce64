package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	grpcapi "simple-notes-manager/internal/api/grpc"
)

var updateContent string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *grpcapi.Client) error {
			ctx, cancel := callContext()
			defer cancel()

			notes, err := client.ListNotes(ctx)
			if err != nil {
				return err
			}
			return printJSON(notes)
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get a note by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		return withClient(func(client *grpcapi.Client) error {
			ctx, cancel := callContext()
			defer cancel()

			note, err := client.GetNote(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(note)
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create [content]",
	Short: "Create a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *grpcapi.Client) error {
			ctx, cancel := callContext()
			defer cancel()

			note, err := client.CreateNote(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(note)
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a note. Without --content the note is left unchanged",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var content *string
		if cmd.Flags().Changed("content") {
			content = &updateContent
		}

		return withClient(func(client *grpcapi.Client) error {
			ctx, cancel := callContext()
			defer cancel()

			note, err := client.UpdateNote(ctx, id, content)
			if err != nil {
				return err
			}
			return printJSON(note)
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		return withClient(func(client *grpcapi.Client) error {
			ctx, cancel := callContext()
			defer cancel()

			if err := client.DeleteNote(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %d\n", id)
			return nil
		})
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q: must be an integer", s)
	}
	return id, nil
}

func init() {
	updateCmd.Flags().StringVar(&updateContent, "content", "", "New content of the note")

	rootCmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd)
}
