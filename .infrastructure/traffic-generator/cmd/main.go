package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метрики
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_generator_requests_total",
		Help: "Запросы генератора к marketplace по маршруту и статусу",
	}, []string{"route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "traffic_generator_request_duration_seconds",
		Help:    "Длительность запроса генератора в секундах",
		Buckets: []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1, 2},
	}, []string{"route"})
)

type route struct {
	name string
	path string
}

// только чтение: генератор не должен двигать заказы по статусам
var routes = []route{
	{name: "ping", path: "/ping"},
	{name: "orders_mine", path: "/orders/mine?limit=20"},
	{name: "orders_seller", path: "/orders/seller?limit=20"},
	{name: "delivery_jobs", path: "/delivery/jobs?status=open&limit=20"},
}

func hit(client *http.Client, baseURL string, r route, userID int64) {
	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(r.name).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequest(http.MethodGet, baseURL+r.path, nil)
	if err != nil {
		requestsTotal.WithLabelValues(r.name, "build_error").Inc()
		return
	}
	req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))

	resp, err := client.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(r.name, "transport_error").Inc()
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	requestsTotal.WithLabelValues(r.name, strconv.Itoa(resp.StatusCode)).Inc()
}

func main() {
	baseURL := flag.String("target", "http://localhost:8080", "marketplace base URL")
	users := flag.Int64("users", 10, "number of seeded user ids to rotate through")
	interval := flag.Duration("interval", 500*time.Millisecond, "pause between requests")
	flag.Parse()

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":2112", nil); err != nil { //nolint:gosec // local tooling
			log.Fatal(err)
		}
	}()

	client := &http.Client{Timeout: 5 * time.Second}
	fmt.Printf("generating traffic against %s\n", *baseURL)

	for {
		r := routes[rand.Intn(len(routes))]
		hit(client, *baseURL, r, 1+rand.Int63n(*users))
		time.Sleep(*interval)
	}
}
