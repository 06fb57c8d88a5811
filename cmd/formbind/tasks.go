package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbind/pkg/client"
)

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage message tasks",
	}

	var page client.Page
	list := &cobra.Command{
		Use:   "list",
		Short: "List message tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.callAPI(cmd, func(c *client.Client) (*client.Response, error) {
				return c.ListMessageTasks(cmd.Context(), &page)
			})
		},
	}
	list.Flags().IntVar(&page.Offset, "offset", 0, "listing offset")
	list.Flags().IntVar(&page.Limit, "limit", client.DefaultPageLimit, "listing page size")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one message task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.callAPI(cmd, func(c *client.Client) (*client.Response, error) {
				return c.GetMessageTask(cmd.Context(), id)
			})
		},
	}

	var isTest bool
	run := &cobra.Command{
		Use:   "run ID",
		Short: "Run a message task now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.callAPI(cmd, func(c *client.Client) (*client.Response, error) {
				return c.RunMessageTask(cmd.Context(), id, isTest)
			})
		},
	}
	run.Flags().BoolVar(&isTest, "test", false, "send a test notification")

	var createData string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a message task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := parseTaskData(createData)
			if err != nil {
				return err
			}
			return a.callAPI(cmd, func(c *client.Client) (*client.Response, error) {
				return c.CreateMessageTask(cmd.Context(), data)
			})
		},
	}
	create.Flags().StringVar(&createData, "data", "", "task JSON, or @file")

	var updateData string
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Update a message task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			data, err := parseTaskData(updateData)
			if err != nil {
				return err
			}
			return a.callAPI(cmd, func(c *client.Client) (*client.Response, error) {
				return c.UpdateMessageTask(cmd.Context(), id, data)
			})
		},
	}
	update.Flags().StringVar(&updateData, "data", "", "task JSON, or @file")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a message task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.callAPI(cmd, func(c *client.Client) (*client.Response, error) {
				return c.DeleteMessageTask(cmd.Context(), id)
			})
		},
	}

	var refreshData string
	refresh := &cobra.Command{
		Use:   "refresh [ID]",
		Short: "Reschedule all task jobs, or one task's job",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.callAPI(cmd, func(c *client.Client) (*client.Response, error) {
					return c.RefreshJobs(cmd.Context())
				})
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			data, err := parseTaskData(refreshData)
			if err != nil {
				return err
			}
			return a.callAPI(cmd, func(c *client.Client) (*client.Response, error) {
				return c.RefreshJob(cmd.Context(), id, data)
			})
		},
	}
	refresh.Flags().StringVar(&refreshData, "data", "", "task JSON, or @file (single task only)")

	cmd.AddCommand(list, get, run, create, update, del, refresh)
	return cmd
}

func (a *app) callAPI(cmd *cobra.Command, call func(*client.Client) (*client.Response, error)) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}
	resp, err := call(c)
	if err != nil {
		return err
	}
	return writeBody(cmd.OutOrStdout(), resp)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

// parseTaskData decodes inline JSON or, with a leading @, a JSON file. Empty
// input yields an empty update.
func parseTaskData(raw string) (client.MessageTaskUpdate, error) {
	var data client.MessageTaskUpdate
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return data, nil
	}
	payload := []byte(raw)
	if strings.HasPrefix(raw, "@") {
		content, err := os.ReadFile(strings.TrimPrefix(raw, "@"))
		if err != nil {
			return data, fmt.Errorf("read task data: %w", err)
		}
		payload = content
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return data, fmt.Errorf("decode task data: %w", err)
	}
	return data, nil
}
