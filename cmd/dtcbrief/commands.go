package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/dtcbrief-go/internal/server"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/clickup"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/output"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/parser"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [input.xlsx]",
		Short: "Write tasks to a ClickUp import file",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}
	cmd.Flags().StringP("output", "o", "", "Output file path (default: <brand>_ClickUp_Import.<format>)")
	cmd.Flags().String("format", "csv", "Output format: csv, json, yaml")
	bindFlags(v, cmd.Flags(), map[string]string{"output": "output", "format": "format"})
	return cmd
}

func newWeeksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weeks [input.xlsx]",
		Short: "List the weekly sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runWeeks,
	}
}

func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push [input.xlsx]",
		Short: "Create tasks directly in a ClickUp list",
		Args:  cobra.ExactArgs(1),
		RunE:  runPush,
	}
	cmd.Flags().String("list-id", "", "ClickUp list id")
	cmd.Flags().Int("max-retries", 4, "Retries per task on rate limits and server errors")
	bindFlags(v, cmd.Flags(), map[string]string{"clickup.list_id": "list-id", "clickup.max_retries": "max-retries"})
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload-and-download web front end",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().String("addr", ":8501", "Listen address")
	bindFlags(v, cmd.Flags(), map[string]string{"server.addr": "addr"})
	return cmd
}

// options builds conversion options from the resolved config.
func options() dtcbrief.Options {
	links := cfg.Links
	return dtcbrief.Options{
		Brand:           cfg.Brand,
		Weeks:           cfg.Weeks,
		IncludeLaunches: cfg.Launches,
		IncludeLinks:    &links,
		Assignee:        cfg.Assignee,
		ReferenceYear:   cfg.ReferenceYear,
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	opts := options()
	brand, err := dtcbrief.NormalizeBrand(opts.Brand)
	if err != nil {
		return err
	}

	outputPath := cfg.Output
	if outputPath == "" {
		outputPath = brand + "_ClickUp_Import" + format.Extension()
	}

	result, err := dtcbrief.Run(cmd.Context(), args[0], opts, output.NewFileEmitter(outputPath, format))
	if result != nil {
		printSummary(cmd.OutOrStdout(), args[0], outputPath, result)
	}
	if err != nil {
		return explain(err)
	}
	return nil
}

func runWeeks(cmd *cobra.Command, args []string) error {
	wb, err := dtcbrief.OpenWorkbook(args[0], false)
	if err != nil {
		return err
	}
	weeks := parser.AvailableWeeks(wb)
	if len(weeks) == 0 {
		return explain(&models.EmptyInputError{BookName: wb.BookName, Sheets: wb.SheetNames()})
	}
	for _, w := range weeks {
		fmt.Fprintln(cmd.OutOrStdout(), w)
	}
	return nil
}

func runPush(cmd *cobra.Command, args []string) error {
	client, err := clickup.NewClient(clickup.Config{
		BaseURL:    cfg.ClickUp.BaseURL,
		Token:      cfg.ClickUp.Token,
		ListID:     cfg.ClickUp.ListID,
		Timeout:    cfg.ClickUp.Timeout,
		MaxRetries: cfg.ClickUp.MaxRetries,
	})
	if err != nil {
		return fmt.Errorf("%w (set DTC_CLICKUP_TOKEN and --list-id)", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := dtcbrief.Run(ctx, args[0], options(), client)
	if result != nil {
		printSummary(cmd.OutOrStdout(), args[0], client.Sink(), result)
	}
	if err != nil {
		return explain(err)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		Defaults:       options(),
	})
	return srv.Run(ctx, cfg.Server.Addr)
}

// explain adds a hint to errors the user can fix in the workbook.
func explain(err error) error {
	var empty *dtcbrief.EmptyInputError
	if errors.As(err, &empty) {
		return fmt.Errorf("%w\nhint: weekly sheets must be named like Wk6, Wk7 or PB_wk2_12", err)
	}
	return err
}

func printSummary(w io.Writer, input, sink string, result *models.ConversionResult) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\nCONVERSION SUMMARY\n%s\n", rule, rule)
	fmt.Fprintf(w, "Brand:                %s\n", result.Brand)
	fmt.Fprintf(w, "Excel File:           %s\n", input)
	fmt.Fprintf(w, "Output:               %s\n", sink)
	fmt.Fprintf(w, "Email Brief Tasks:    %d\n", result.Stats.EmailBriefs)
	fmt.Fprintf(w, "SMS Brief Tasks:      %d\n", result.Stats.SMSBriefs)
	if result.Stats.ProductLaunches > 0 {
		fmt.Fprintf(w, "Product Launches:     %d\n", result.Stats.ProductLaunches)
	}
	fmt.Fprintf(w, "Sheets Processed:     %d\n", result.Stats.SheetsProcessed)
	fmt.Fprintf(w, "Total Tasks:          %d\n", result.Stats.TotalTasks)
	if n := len(result.Rejections); n > 0 {
		fmt.Fprintf(w, "Rejected Rows:        %d\n", n)
		for _, r := range result.Rejections {
			fmt.Fprintf(w, "  - %s %s: %s\n", r.Sheet, r.Cell, r.Reason)
		}
	}
	for _, f := range result.SheetFailures {
		fmt.Fprintf(w, "Skipped Sheet:        %s (%s)\n", f.Sheet, f.Message)
	}
	fmt.Fprintf(w, "%s\n\n", rule)
}

