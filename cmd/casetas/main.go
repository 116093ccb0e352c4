package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"casetas-go/internal/app"
	"casetas-go/internal/caseta"
	"casetas-go/internal/config"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp locates the config and creates a CasetasApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "AddTicket", "SaveRecord").
func newApp(operation string) (*app.CasetasApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	a, err := app.NewCasetasApp(defaults["config_path"], operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// printTable writes the ticket rows and the summary row to stdout.
func printTable(table caseta.Table) {
	fmt.Printf("%4s  %-30s  %12s  %12s  %10s\n", "ID", "Toll", "Total", "Sub-Total", "IVA")
	for _, t := range table.Rows {
		fmt.Printf("%4d  %-30s  %12s  %12s  %10s\n",
			t.ID, t.Name, t.Total.StringFixed(2), t.SubTotal.StringFixed(2), t.Tax.StringFixed(2))
	}
	s := table.Summary
	fmt.Printf("%4s  %-30s  %12s  %12s  %10s\n",
		"", s.Name, s.Total.StringFixed(2), s.SubTotal.StringFixed(2), s.Tax.StringFixed(2))
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid ticket id: %s", arg)
	}
	return id, nil
}

// confirm asks a yes/no question on the terminal.
func confirm(prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("refusing to prompt without a terminal (use --yes)")
	}
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

var rootCmd = &cobra.Command{
	Use:          "casetas",
	Short:        "Toll ticket ledger with IVA breakdown",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		exportDir := cfg.ExportDir
		if exportDir == "" {
			exportDir = cfg.DefaultExportDir() + " (default)"
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Export Dir: %s\n", exportDir)
		fmt.Printf("Session:    %s\n", cfg.SessionFile)
		fmt.Printf("Database:   %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		return nil
	},
}

var configExportDirCmd = &cobra.Command{
	Use:   "export-dir [PATH]",
	Short: "Show or change the export directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ExportDir")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 0 {
			dir, err := a.ExportDir()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		}

		dir, err := a.SetExportDir(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Export directory set to %s\n", dir)
		return nil
	},
}

// ticket command
var ticketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Edit the tickets of the current session",
}

var ticketAddCmd = &cobra.Command{
	Use:   "add NAME TOTAL",
	Short: "Add a ticket",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddTicket")
		if err != nil {
			return err
		}
		defer a.Close()

		t, err := a.AddTicket(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("#%d  %s  %s (sub-total %s, IVA %s)\n",
			t.ID, t.Name, t.Total.StringFixed(2), t.SubTotal.StringFixed(2), t.Tax.StringFixed(2))
		return nil
	},
}

var ticketEditCmd = &cobra.Command{
	Use:   "edit ID NAME TOTAL",
	Short: "Replace a ticket",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("EditTicket")
		if err != nil {
			return err
		}
		defer a.Close()

		t, err := a.EditTicket(id, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("#%d  %s  %s\n", t.ID, t.Name, t.Total.StringFixed(2))
		return nil
	},
}

var ticketRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("RemoveTicket")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RemoveTicket(id); err != nil {
			return err
		}
		fmt.Printf("Removed ticket #%d\n", id)
		return nil
	},
}

var ticketListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the current tickets",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListTickets")
		if err != nil {
			return err
		}
		defer a.Close()

		if rec := a.CurrentRecord(); rec != "" {
			fmt.Printf("Record: %s\n\n", rec)
		}
		printTable(a.Table())
		return nil
	},
}

var ticketClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Start a new, empty session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ClearSession")
		if err != nil {
			return err
		}
		defer a.Close()

		a.ClearSession()
		fmt.Println("Session cleared.")
		return nil
	},
}

// record command
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage saved records",
}

var recordSaveCmd = &cobra.Command{
	Use:   "save [NAME]",
	Short: "Save the current tickets as a named record",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetBool("keep")

		a, err := newApp("SaveRecord")
		if err != nil {
			return err
		}
		defer a.Close()

		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		rec, err := a.SaveRecord(cmd.Context(), name, keep)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %q: %d ticket(s), total %s\n", rec.Name, rec.TicketCount, rec.Total.StringFixed(2))
		return nil
	},
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved records",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListRecords")
		if err != nil {
			return err
		}
		defer a.Close()

		recs, err := a.ListRecords(cmd.Context())
		if err != nil {
			return err
		}

		if len(recs) == 0 {
			fmt.Println("No saved records.")
			return nil
		}

		fmt.Printf("%4s  %-20s  %-10s  %-10s  %7s  %12s  %12s  %10s\n",
			"ID", "Name", "Created", "Modified", "Tickets", "Total", "Sub-Total", "IVA")
		for _, r := range recs {
			fmt.Printf("%4d  %-20s  %-10s  %-10s  %7d  %12s  %12s  %10s\n",
				r.ID, r.Name, r.CreatedAt, r.ModifiedAt, r.TicketCount,
				r.Total.StringFixed(2), r.SubTotal.StringFixed(2), r.Tax.StringFixed(2))
		}
		return nil
	},
}

var recordOpenCmd = &cobra.Command{
	Use:   "open NAME",
	Short: "Load a saved record into the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("OpenRecord")
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.OpenRecord(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Opened %q with %d ticket(s)\n", args[0], n)
		return nil
	},
}

var recordShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a saved record without opening it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ShowRecord")
		if err != nil {
			return err
		}
		defer a.Close()

		rec, table, err := a.ShowRecord(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Record: %s  (created %s, modified %s)\n\n", rec.Name, rec.CreatedAt, rec.ModifiedAt)
		printTable(table)
		return nil
	},
}

var recordRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete a saved record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			ok, err := confirm(fmt.Sprintf("Delete record %q?", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		a, err := newApp("DeleteRecord")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteRecord(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", args[0])
		return nil
	},
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export BASENAME",
	Short: "Export the session or a saved record to CSV, XLSX or PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		record, _ := cmd.Flags().GetString("record")
		dir, _ := cmd.Flags().GetString("dir")

		a, err := newApp("Export")
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.Export(cmd.Context(), args[0], format, record, dir)
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

// backup command
var backupCmd = &cobra.Command{
	Use:   "backup PATH",
	Short: "Copy the records database to PATH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Backup")
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.Backup(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Database copied to %s\n", path)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configExportDirCmd)

	// ticket subcommands
	ticketCmd.AddCommand(ticketAddCmd)
	ticketCmd.AddCommand(ticketEditCmd)
	ticketCmd.AddCommand(ticketRmCmd)
	ticketCmd.AddCommand(ticketListCmd)
	ticketCmd.AddCommand(ticketClearCmd)

	// record subcommands
	recordCmd.AddCommand(recordSaveCmd)
	recordSaveCmd.Flags().BoolP("keep", "k", false, "Keep the tickets in the session after saving")
	recordCmd.AddCommand(recordListCmd)
	recordCmd.AddCommand(recordOpenCmd)
	recordCmd.AddCommand(recordShowCmd)
	recordCmd.AddCommand(recordRmCmd)
	recordRmCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(ticketCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("format", "f", "csv", "Output format: csv, xlsx or pdf")
	exportCmd.Flags().StringP("record", "r", "", "Export a saved record instead of the session")
	exportCmd.Flags().StringP("dir", "d", "", "Output directory (default: configured export directory)")
	rootCmd.AddCommand(backupCmd)
}
