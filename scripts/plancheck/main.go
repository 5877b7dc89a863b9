// Command plancheck smoke-tests a running instance: it posts the same plan
// snapshot several times and verifies the API returns byte-identical plans,
// which is the determinism contract the result cache relies on.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type runResult struct {
	Snapshot string
	Status   int
	PlanID   string
	Match    bool
	Error    error
	Duration time.Duration
}

func main() {
	var (
		base          string
		snapshotsPath string
		repeats       int
		timeout       time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&snapshotsPath, "snapshots", filepath.Join("scripts", "plancheck", "snapshots"), "Directory of snapshot JSON files")
	flag.IntVar(&repeats, "repeats", 3, "How many times to replay each snapshot")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	snapshots, err := loadSnapshots(snapshotsPath)
	if err != nil {
		log.Fatalf("failed to load snapshots: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var failures int

	results := make([]runResult, 0, len(snapshots))
	for name, payload := range snapshots {
		res := checkSnapshot(client, base, name, payload, repeats)
		if res.Error != nil || !res.Match || res.Status != http.StatusOK {
			failures++
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Snapshots checked: %d, failures: %d\n", len(results), failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func loadSnapshots(dir string) (map[string][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	snapshots := make(map[string][]byte)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		snapshots[entry.Name()] = data
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no snapshot files in %s", dir)
	}
	return snapshots, nil
}

func checkSnapshot(client *http.Client, base, name string, payload []byte, repeats int) runResult {
	res := runResult{Snapshot: name, Match: true}
	url := strings.TrimRight(base, "/") + "/api/v1/plan/generate"

	var first []byte
	start := time.Now()
	for i := 0; i < repeats; i++ {
		resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
		if err != nil {
			res.Error = fmt.Errorf("request %d failed: %w", i+1, err)
			return res
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			res.Error = fmt.Errorf("read response %d: %w", i+1, err)
			return res
		}
		res.Status = resp.StatusCode
		if resp.StatusCode != http.StatusOK {
			res.Error = fmt.Errorf("request %d returned %d: %s", i+1, resp.StatusCode, strings.TrimSpace(string(body)))
			return res
		}
		if i == 0 {
			first = body
			res.PlanID = extractPlanID(body)
			continue
		}
		if !bodiesEqual(first, body) {
			res.Match = false
		}
	}
	res.Duration = time.Since(start)
	return res
}

func extractPlanID(body []byte) string {
	var envelope struct {
		Data struct {
			PlanID string `json:"plan_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Data.PlanID
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	return reflect.DeepEqual(aj, bj)
}

func printReport(results []runResult) {
	fmt.Println("Plan Determinism Report")
	fmt.Println("=======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.Match {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s\n", status, res.Snapshot)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Status: %d | Plan: %s | Stable: %t (%s)\n", res.Status, res.PlanID, res.Match, res.Duration)
	}
}
