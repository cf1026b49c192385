package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/saturnines/lakehouse-sdk/pkg/config"
	"github.com/saturnines/lakehouse-sdk/pkg/lakehouse"
	"github.com/saturnines/lakehouse-sdk/pkg/logging"
	"github.com/saturnines/lakehouse-sdk/pkg/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not loaded:", err)
	}

	logger, err := logging.New("info", logging.FormatText, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.DefaultLoader().Load("demo/ingestion-jobs/lakehouse.yaml")
	if err != nil {
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		log.Fatal(err)
	}

	svc, err := lakehouse.New(cfg, lakehouse.WithLogger(logger), lakehouse.WithMetrics(m))
	if err != nil {
		log.Fatal(err)
	}

	pager, err := lakehouse.NewIngestionJobsPager(svc, &lakehouse.ListIngestionJobsOptions{})
	if err != nil {
		log.Fatal(err)
	}

	byStatus := map[string]int{}
	for job, err := range pager.Items(context.Background()) {
		if err != nil {
			log.Fatal(err)
		}
		byStatus[job.Status]++
		fmt.Printf("%-36s %-10s %s\n", job.JobID, job.Status, job.TargetTable)
	}

	fmt.Printf("\n%d pages, jobs by status: %v\n", pager.Pages(), byStatus)

	families, err := reg.Gather()
	if err != nil {
		log.Fatal(err)
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				fmt.Printf("%s %v\n", mf.GetName(), c.GetValue())
			}
		}
	}
}
