package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numPersons   = 200
)

var organizations = []string{"LSPD", "FIB", "EMS", "SAHP", "Government"}
var positions = []string{"Chief", "Captain", "Lieutenant", "Sergeant", "Officer"}
var reasons = []string{"inactivity", "rule violation", "misconduct", "abuse of power"}
var newsChannels = []string{"announcements", "general", "events"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== RosterDaemon Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Persons: %d\n\n", numWorkers, testDuration, numPersons)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: Seed the roster and news ledger
	fmt.Println("\n--- Phase 1: Seeding (POST /roster/appoint, POST /news) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.7 {
			return doAppoint(rng)
		}
		return doPublishNews(rng)
	})

	// Phase 2: Mixed read/write load
	fmt.Println("\n--- Phase 2: Mixed load (50% POST, 50% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.20:
			return doAppoint(rng)
		case r < 0.35:
			return doWarning(rng)
		case r < 0.45:
			return doPublishNews(rng)
		case r < 0.50:
			return doResolve(rng)
		case r < 0.70:
			return doGetList(rng)
		case r < 0.85:
			return doGetRecentNews(rng)
		default:
			return doGetStats()
		}
	})

	// Phase 3: Read-heavy load
	fmt.Println("\n--- Phase 3: Read-heavy load (10% POST, 90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doWarning(rng)
		case r < 0.50:
			return doGetList(rng)
		case r < 0.80:
			return doGetRecentNews(rng)
		default:
			return doGetStats()
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func personID(rng *rand.Rand) string {
	return fmt.Sprintf("Person_%d", rng.Intn(numPersons)+1)
}

func category(rng *rand.Rand) string {
	if rng.Float64() < 0.5 {
		return "leaders"
	}
	return "deputies"
}

func doAppoint(rng *rand.Rand) result {
	body := map[string]interface{}{
		"category":     category(rng),
		"id":           personID(rng),
		"organization": organizations[rng.Intn(len(organizations))],
		"position":     positions[rng.Intn(len(positions))],
		"actor":        "loadtest",
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/roster/appoint", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /roster/appoint", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// 409 on an already registered id is an expected outcome, not an error
	ok := resp.StatusCode == 201 || resp.StatusCode == 409
	return result{"POST /roster/appoint", resp.StatusCode, lat, !ok}
}

func doWarning(rng *rand.Rand) result {
	body := map[string]interface{}{
		"id":     personID(rng),
		"reason": reasons[rng.Intn(len(reasons))],
		"actor":  "loadtest",
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/discipline/warning", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /discipline/warning", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /discipline/warning", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doPublishNews(rng *rand.Rand) result {
	body := map[string]interface{}{
		"text":       fmt.Sprintf("load test announcement %d", rng.Intn(100000)),
		"author":     "loadtest",
		"channel":    newsChannels[rng.Intn(len(newsChannels))],
		"channel_id": rng.Int63n(1000),
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/news", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /news", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /news", resp.StatusCode, lat, resp.StatusCode != 201}
}

func doResolve(rng *rand.Rand) result {
	body := map[string]interface{}{
		"token": personID(rng),
		"identities": []map[string]interface{}{
			{"id": rng.Int63n(1000), "name": personID(rng), "display_name": personID(rng)},
		},
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/resolve", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /resolve", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /resolve", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetList(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/roster/list?category=%s", baseURL, category(rng))
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /roster/list", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /roster/list", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetRecentNews(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/news/recent?limit=%d", baseURL, rng.Intn(10)+1)
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /news/recent", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /news/recent", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetStats() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/stats")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /stats", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /stats", resp.StatusCode, lat, resp.StatusCode != 200}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
