package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

type options struct {
	baseURL string
	timeout time.Duration
	output  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "siteledger-cli",
		Short:        "SiteLedger CLI tool",
		Long:         `A command line interface for querying project financials from the SiteLedger API.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the SiteLedger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table or json")

	rootCmd.AddCommand(
		newSummaryCmd(opts),
		newDailyCmd(opts),
		newStatsCmd(opts),
		newTotalCmd(opts),
		newSnapshotCmd(opts),
	)

	return rootCmd
}

func newSummaryCmd(opts *options) *cobra.Command {
	var date, from, to string

	cmd := &cobra.Command{
		Use:   "summary <project-id>",
		Short: "Show a project's financial summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := periodQuery(date, from, to)
			body, err := opts.do(cmd.Context(), http.MethodGet, "/projects/"+url.PathEscape(args[0])+"/summary", q)
			if err != nil {
				return err
			}
			return opts.printSummaries(cmd.OutOrStdout(), body, false)
		},
	}

	addPeriodFlags(cmd, &date, &from, &to)
	return cmd
}

func newDailyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "daily <project-id> <date>",
		Short: "Show a project's summary for one day with carried-forward balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/projects/" + url.PathEscape(args[0]) + "/daily/" + url.PathEscape(args[1])
			body, err := opts.do(cmd.Context(), http.MethodGet, path, nil)
			if err != nil {
				return err
			}
			return opts.printSummaries(cmd.OutOrStdout(), body, false)
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	var date, from, to string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show summaries for every active project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := opts.do(cmd.Context(), http.MethodGet, "/projects/stats", periodQuery(date, from, to))
			if err != nil {
				return err
			}
			return opts.printSummaries(cmd.OutOrStdout(), body, true)
		},
	}

	addPeriodFlags(cmd, &date, &from, &to)
	return cmd
}

func newTotalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "total <date>",
		Short: "Show the all-projects total for one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := opts.do(cmd.Context(), http.MethodGet, "/daily/"+url.PathEscape(args[0])+"/total", nil)
			if err != nil {
				return err
			}
			return opts.printSummaries(cmd.OutOrStdout(), body, false)
		},
	}
}

func newSnapshotCmd(opts *options) *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Daily snapshot operations",
	}

	persistCmd := &cobra.Command{
		Use:   "persist <project-id> <date>",
		Short: "Compute and store a project's closing balance for a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/projects/" + url.PathEscape(args[0]) + "/daily/" + url.PathEscape(args[1]) + "/snapshot"
			body, err := opts.do(cmd.Context(), http.MethodPost, path, nil)
			if err != nil {
				return err
			}
			return opts.printSnapshots(cmd.OutOrStdout(), body, false)
		},
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's stored snapshots, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			if offset > 0 {
				q.Set("offset", strconv.Itoa(offset))
			}
			body, err := opts.do(cmd.Context(), http.MethodGet, "/projects/"+url.PathEscape(args[0])+"/snapshots", q)
			if err != nil {
				return err
			}
			return opts.printSnapshots(cmd.OutOrStdout(), body, true)
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 0, "Maximum snapshots to return")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Snapshots to skip")

	snapshotCmd.AddCommand(persistCmd, listCmd)
	return snapshotCmd
}

func addPeriodFlags(cmd *cobra.Command, date, from, to *string) {
	cmd.Flags().StringVar(date, "date", "", "Single day (YYYY-MM-DD)")
	cmd.Flags().StringVar(from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(to, "to", "", "Range end (YYYY-MM-DD)")
}

func periodQuery(date, from, to string) url.Values {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	if from != "" {
		q.Set("dateFrom", from)
	}
	if to != "" {
		q.Set("dateTo", to)
	}
	return q
}

func (o *options) do(ctx context.Context, method, path string, q url.Values) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	target := o.baseURL + "/api/v1/financials" + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", strconv.FormatInt(time.Now().UnixNano(), 36))
	}

	client := &http.Client{Timeout: o.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, truncate(string(bytes.TrimSpace(body)), 200))
	}

	return body, nil
}

type summaryView struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Period      string `json:"period"`
	Income      struct {
		Total          string `json:"totalIncome"`
		CarriedForward string `json:"carriedForwardBalance"`
	} `json:"income"`
	Expenses struct {
		Total string `json:"totalCashExpenses"`
	} `json:"expenses"`
	CashBalance  string `json:"cashBalance"`
	TotalBalance string `json:"totalBalance"`
}

func (o *options) printSummaries(w io.Writer, body []byte, list bool) error {
	if o.output == "json" {
		return printJSON(w, body)
	}

	var views []summaryView
	if list {
		var stats struct {
			Projects []summaryView `json:"projects"`
		}
		if err := json.Unmarshal(body, &stats); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		views = stats.Projects
	} else {
		var v summaryView
		if err := json.Unmarshal(body, &v); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		views = []summaryView{v}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJECT\tNAME\tPERIOD\tCARRIED\tINCOME\tEXPENSES\tCASH\tBALANCE")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(v.ProjectID, 12), truncate(v.ProjectName, 24), v.Period,
			v.Income.CarriedForward, v.Income.Total, v.Expenses.Total, v.CashBalance, v.TotalBalance)
	}
	return tw.Flush()
}

type snapshotView struct {
	ProjectID        string `json:"projectId"`
	Date             string `json:"date"`
	TotalIncome      string `json:"totalIncome"`
	TotalExpenses    string `json:"totalExpenses"`
	RemainingBalance string `json:"remainingBalance"`
}

func (o *options) printSnapshots(w io.Writer, body []byte, list bool) error {
	if o.output == "json" {
		return printJSON(w, body)
	}

	var views []snapshotView
	if list {
		if err := json.Unmarshal(body, &views); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	} else {
		var v snapshotView
		if err := json.Unmarshal(body, &v); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		views = []snapshotView{v}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJECT\tDATE\tINCOME\tEXPENSES\tREMAINING")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", truncate(v.ProjectID, 12), v.Date, v.TotalIncome, v.TotalExpenses, v.RemainingBalance)
	}
	return tw.Flush()
}

func printJSON(w io.Writer, body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
