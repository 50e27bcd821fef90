// loadgen drives a steady request rate against a running backend and
// prints latency percentiles. Useful for checking the Ticketmaster
// rate limiter and search path under load.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

func main() {
	target := flag.String("target", "http://localhost:8080", "base URL of the backend")
	rate := flag.Int("rate", 10, "requests per second")
	duration := flag.Duration("duration", 15*time.Second, "attack duration")
	keyword := flag.String("keyword", "concert", "search keyword")
	flag.Parse()

	searchURL := fmt.Sprintf("%s/api/events?keyword=%s&lat=34.052235&lng=-118.243683&distance=25",
		*target, url.QueryEscape(*keyword))

	targeter := vegeta.NewStaticTargeter(vegeta.Target{
		Method: "GET",
		URL:    searchURL,
	})

	attacker := vegeta.NewAttacker()
	pacer := vegeta.Rate{Freq: *rate, Per: time.Second}

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, pacer, *duration, "search") {
		metrics.Add(res)
	}
	metrics.Close()

	log.Printf("requests: %d, success: %.2f%%", metrics.Requests, metrics.Success*100)
	log.Printf("latency p50: %s, p95: %s, p99: %s, max: %s",
		metrics.Latencies.P50, metrics.Latencies.P95, metrics.Latencies.P99, metrics.Latencies.Max)
	for code, count := range metrics.StatusCodes {
		log.Printf("status %s: %d", code, count)
	}
	if len(metrics.Errors) > 0 {
		log.Printf("errors: %v", metrics.Errors)
	}
}
