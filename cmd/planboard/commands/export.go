package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tdnguyen/planboard/internal/api"
)

var (
	exportProjectID int64
	exportFormat    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print projects or one project's tasks without entering the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := api.New(cfg.APIBaseURL, cfg.APIToken, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if exportProjectID > 0 {
			return exportTasks(ctx, client, exportProjectID)
		}
		return exportProjects(ctx, client)
	},
}

func init() {
	exportCmd.Flags().Int64Var(&exportProjectID, "project", 0, "export the tasks of this project id")
	exportCmd.Flags().StringVar(&exportFormat, "format", "table", "output format: table or csv")
	rootCmd.AddCommand(exportCmd)
}

func newWriter(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(header)
	return t
}

func render(t table.Writer) {
	if exportFormat == "csv" {
		t.RenderCSV()
		return
	}
	t.Render()
}

func exportProjects(ctx context.Context, client *api.Client) error {
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return err
	}

	t := newWriter(table.Row{"ID", "Name", "Status", "Due", "Description"})
	for _, p := range projects {
		due := ""
		if p.DueDate.Valid() {
			due = p.DueDate.Format("2006-01-02")
		}
		t.AppendRow(table.Row{p.ID, p.Name, p.Status, due, p.Description})
	}
	render(t)
	return nil
}

func exportTasks(ctx context.Context, client *api.Client, projectID int64) error {
	tasks, err := client.ListProjectTasks(ctx, projectID)
	if err != nil {
		return err
	}

	t := newWriter(table.Row{"ID", "Title", "Status", "Priority", "Due", "Progress"})
	for _, task := range tasks {
		due := ""
		if task.DueDate.Valid() {
			due = task.DueDate.Format("2006-01-02")
		}
		t.AppendRow(table.Row{
			task.ID, task.Title, task.Status, task.Priority, due,
			fmt.Sprintf("%.0f%%", task.ProgressPercent),
		})
	}
	render(t)
	return nil
}
