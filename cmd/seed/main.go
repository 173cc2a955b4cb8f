// Command seed populates the record store with synthetic conversion records
// for local development of the viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"recording-logs/internal/config"
	"recording-logs/internal/domain"
	"recording-logs/internal/storage"
)

var (
	programs  = []string{"medicaid", "snap", "tanf", "childcare"}
	formNames = []string{"intake-form", "renewal-form", "appeal-form", "change-report"}
	agents    = []string{"agent-smith", "agent-jones", "agent-brown", "agent-lee"}
	failures  = []string{
		"transcode step exited with code 2",
		"source recording not found in archive",
		"document upload rejected: checksum mismatch",
		"conversion timed out after 600s",
	}
)

func main() {
	count := flag.Int("count", 50, "number of records to insert")
	days := flag.Int("days", 14, "spread CreatedOn over the last N days")
	withDocuments := flag.Bool("with-documents", false, "upload placeholder converted documents for SUCCESS records")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open record store: %v", err)
	}
	defer store.Close()

	var docs *storage.MinioStore
	if *withDocuments {
		docs, err = storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL, cfg.MinioBucket)
		if err != nil {
			log.Fatalf("connect minio: %v", err)
		}
	}

	ctx := context.Background()
	now := time.Now().UTC()
	for i := 0; i < *count; i++ {
		rec := randomRecord(now, *days)
		if err := store.PutRecord(ctx, rec); err != nil {
			log.Fatalf("put record %s: %v", rec.TaskID, err)
		}
		if docs != nil && rec.Status == domain.StatusSuccess {
			body := []byte(fmt.Sprintf("converted document for task %s\n", rec.TaskID))
			if err := docs.PutConvertedDocument(ctx, rec.DocumentumID, body); err != nil {
				log.Fatalf("put document %s: %v", rec.DocumentumID, err)
			}
		}
	}
	log.Printf("seeded %d records over the last %d days", *count, *days)
}

func openStore(cfg config.Config) (storage.RecordStore, error) {
	if cfg.StoreDriver == config.StoreDriverSQLite {
		return storage.NewSQLiteStore(cfg.SQLitePath)
	}
	return storage.NewPostgresStore(cfg.PostgresDSN)
}

func randomRecord(now time.Time, days int) domain.ConversionRecord {
	created := now.Add(-time.Duration(rand.Intn(days*24*3600)) * time.Second)
	status := domain.Status(1 + rand.Intn(5))
	taskID := uuid.NewString()

	rec := domain.ConversionRecord{
		TaskID:     taskID,
		AgentName:  agents[rand.Intn(len(agents))],
		FormName:   formNames[rand.Intn(len(formNames))],
		Program:    programs[rand.Intn(len(programs))],
		CaseNumber: fmt.Sprintf("C-%05d", rand.Intn(100000)),
		AppNumber:  fmt.Sprintf("A-%05d", rand.Intn(100000)),
		CaseUUID:   uuid.NewString(),
		CreatedOn:  created,
		UpdatedAt:  created.Add(time.Duration(rand.Intn(3600)) * time.Second),
		Status:     status,
	}
	switch status {
	case domain.StatusSuccess:
		rec.DocumentumID = "doc-" + taskID
	case domain.StatusFailure, domain.StatusFailureRetry:
		rec.FailureMessage = failures[rand.Intn(len(failures))]
	}
	return rec
}
