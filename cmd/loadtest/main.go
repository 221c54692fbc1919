package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

var (
	targetHost = flag.String("target", "http://localhost:8080", "dashboard base URL")
	rps        = flag.Int("rps", 2, "requests per second")
	duration   = flag.Duration("duration", time.Minute, "attack duration")
)

// Targeter
// Каждый запрос отчета выполняет запросы к GitHub, поэтому основная доля нагрузки на /health.
func makeTargeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		t.Method = http.MethodGet
		t.Body = nil
		t.Header = map[string][]string{"Accept": {"application/json"}}

		// 20% GET api/reviewers
		if rand.Float64() < 0.20 {
			t.URL = *targetHost + "/api/reviewers"
			return nil
		}

		// 80% GET health
		t.URL = *targetHost + "/health"
		return nil
	}
}

// Attack
func runAttack() vegeta.Metrics {
	rate := vegeta.Rate{Freq: *rps, Per: time.Second}
	attacker := vegeta.NewAttacker(vegeta.Timeout(2 * time.Minute))

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", *targetHost, *duration)
	for res := range attacker.Attack(makeTargeter(), rate, *duration, "reviewer-dashboard") {
		metrics.Add(res)
	}
	metrics.Close()

	return metrics
}

func main() {
	flag.Parse()

	metrics := runAttack()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
	for code, count := range metrics.StatusCodes {
		fmt.Printf("Status %s: %d\n", code, count)
	}
}
