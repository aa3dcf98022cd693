package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/amlguard/internal/domain"
	"github.com/iho/amlguard/internal/scorer"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "amlguard-cli",
		Short: "AMLGuard CLI tool",
		Long:  `A command line interface for interacting with the AMLGuard risk API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the AMLGuard API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	var replayLimit int
	replayCmd := &cobra.Command{
		Use:   "replay <file.csv>",
		Short: "Replay a transaction CSV file through the pipeline",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			replayFile(args[0], replayLimit)
		},
	}
	replayCmd.Flags().IntVar(&replayLimit, "limit", 0, "Maximum number of rows to replay (0 = all)")
	rootCmd.AddCommand(replayCmd)

	var modelOut string
	trainCmd := &cobra.Command{
		Use:   "train <file.csv>",
		Short: "Fit the anomaly model from a transaction CSV file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			trainModel(args[0], modelOut)
		},
	}
	trainCmd.Flags().StringVar(&modelOut, "out", "model.json", "Path to write the fitted model parameters")
	rootCmd.AddCommand(trainCmd)

	riskCmd := &cobra.Command{
		Use:   "risk <account>",
		Short: "Show the current risk state of an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/risk")
		},
	}
	rootCmd.AddCommand(riskCmd)

	var alertLimit int
	alertsCmd := &cobra.Command{
		Use:   "alerts",
		Short: "List recent alerts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON(fmt.Sprintf("/api/v1/alerts?limit=%d", alertLimit))
		},
	}
	alertsCmd.Flags().IntVar(&alertLimit, "limit", 20, "Maximum number of alerts to list")
	rootCmd.AddCommand(alertsCmd)

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/ready")
		},
	}
	rootCmd.AddCommand(healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// headerAliases maps raw IBM AML dataset headers to the canonical names.
var headerAliases = map[string]string{
	"Timestamp":          "timestamp",
	"Account":            "from_acc",
	"Account.1":          "to_acc",
	"Amount Received":    "amount",
	"Receiving Currency": "curr",
	"Payment Format":     "payment_type",
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006/01/02 15:04",
	"2006-01-02 15:04:05",
}

func replayFile(path string, limit int) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		fmt.Printf("Error reading header: %v\n", err)
		os.Exit(1)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		if canonical, ok := headerAliases[name]; ok {
			name = canonical
		}
		col[name] = i
	}
	for _, required := range []string{"timestamp", "from_acc", "to_acc", "amount", "curr"} {
		if _, ok := col[required]; !ok {
			fmt.Printf("Missing required column %q in %s\n", required, path)
			os.Exit(1)
		}
	}

	client := &http.Client{Timeout: timeout}
	var sent, alerts, failed int

	for limit <= 0 || sent < limit {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("Error reading row: %v\n", err)
			os.Exit(1)
		}

		ts, err := parseTimestamp(row[col["timestamp"]])
		if err != nil {
			fmt.Printf("Skipping row with bad timestamp %q: %v\n", row[col["timestamp"]], err)
			failed++
			continue
		}

		payload := map[string]any{
			"from_account": row[col["from_acc"]],
			"to_account":   row[col["to_acc"]],
			"amount":       row[col["amount"]],
			"currency":     row[col["curr"]],
			"timestamp":    ts.Format(time.RFC3339),
		}
		if idx, ok := col["payment_type"]; ok {
			payload["payment_type"] = row[idx]
		}

		body, _ := json.Marshal(payload)
		resp, err := client.Post(baseURL+"/api/v1/transactions", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Printf("Error making request: %v\n", err)
			os.Exit(1)
		}

		switch resp.StatusCode {
		case http.StatusCreated:
			alerts++
			alertBody, _ := io.ReadAll(resp.Body)
			fmt.Printf("ALERT: %s\n", string(alertBody))
		case http.StatusNoContent:
		default:
			failed++
			errBody, _ := io.ReadAll(resp.Body)
			fmt.Printf("Rejected (status %d): %s\n", resp.StatusCode, string(errBody))
		}
		resp.Body.Close()
		sent++
	}

	fmt.Printf("Replayed %d transactions: %d alerts, %d rejected\n", sent, alerts, failed)
}

func trainModel(path, out string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		fmt.Printf("Error reading header: %v\n", err)
		os.Exit(1)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		if canonical, ok := headerAliases[name]; ok {
			name = canonical
		}
		col[name] = i
	}
	for _, required := range []string{"timestamp", "amount"} {
		if _, ok := col[required]; !ok {
			fmt.Printf("Missing required column %q in %s\n", required, path)
			os.Exit(1)
		}
	}

	var samples []domain.ScoreVector
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("Error reading row: %v\n", err)
			os.Exit(1)
		}

		ts, err := parseTimestamp(row[col["timestamp"]])
		if err != nil {
			continue
		}
		amount, err := strconv.ParseFloat(row[col["amount"]], 64)
		if err != nil {
			continue
		}

		samples = append(samples, domain.ScoreVector{
			Amount:    amount,
			HourOfDay: float64(ts.Hour()),
		})
	}

	model := scorer.NewGaussian()
	if err := model.Fit(samples); err != nil {
		fmt.Printf("Error fitting model: %v\n", err)
		os.Exit(1)
	}
	if err := model.Save(out); err != nil {
		fmt.Printf("Error saving model: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Fitted model on %d samples, wrote %s\n", len(samples), out)
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format %q", value)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}
