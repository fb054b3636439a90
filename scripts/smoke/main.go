// smoke
//
// Sends a handful of sample concerns through a running web server's
// therapy search endpoint and prints the first verses of each answer.
//
// Usage:
//   go run ./scripts/smoke -url http://localhost:3000 -k 3

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/curaan-web/internal/apiclient"
	"github.com/curaan-web/internal/composer"
)

var sampleIssues = []string{
	"I feel anxious about my future",
	"I'm struggling with loneliness",
	"I need guidance and peace",
	"I feel lost and need direction",
	"أشعر بالقلق حول مستقبلي",
	"Je me sens perdu et j'ai besoin de direction",
	"Me siento ansioso por mi futuro",
}

func main() {
	baseURL := flag.String("url", "http://localhost:3000", "Base URL of the web server")
	k := flag.Int("k", composer.DefaultResultCount, "Number of verses to request")
	timeout := flag.Duration("timeout", 30*time.Second, "Timeout per request")
	flag.Parse()

	root := strings.TrimRight(*baseURL, "/")

	resp, err := http.Get(root + "/api/health")
	if err != nil {
		log.Fatalf("Cannot connect to server: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Health check failed with status %d", resp.StatusCode)
	}
	fmt.Println("Health check passed")

	session := composer.New(apiclient.New(root, *timeout), composer.WithResultCount(*k))

	failures := 0
	for _, issue := range sampleIssues {
		fmt.Printf("\nIssue: %q\n", issue)

		if err := session.Submit(context.Background(), issue); err != nil {
			snap := session.Snapshot()
			if snap.Err != nil {
				fmt.Printf("  failed [%s]: %s\n", snap.Err.Kind, snap.Err.Message)
			} else {
				fmt.Printf("  failed: %v\n", err)
			}
			failures++
			session.Reset()
			continue
		}

		result := session.Snapshot().Result
		if result.AIResponse != "" {
			fmt.Printf("  Healing message: %s\n", result.AIResponse)
		}
		fmt.Printf("  Search query: %s\n", result.SearchQuery)
		fmt.Printf("  Found %d verses\n", len(result.Results))
		for i, verse := range result.Results {
			if i == 2 {
				break
			}
			fmt.Printf("    %d. %s (relevance %d%%)\n", i+1, verse.ID, verse.RelevancePercent())
			fmt.Printf("       EN: %s\n", truncate(verse.EnglishText(), 100))
		}
		session.Reset()
	}

	fmt.Printf("\n%d/%d searches succeeded\n", len(sampleIssues)-failures, len(sampleIssues))
	if failures > 0 {
		os.Exit(1)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
