package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"parking-gate/domain"
	"parking-gate/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	_ = godotenv.Load()
	config, err := loadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	dbPath := flag.String("db", config.BadgerFilepath, "Path to badger DB")
	docID := flag.String("doc", "", "Only show scans for this docId")
	flag.Parse()

	// BypassLockGuard allows opening while the gate terminal holds the lock
	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := repositories.NewScanEventRepository(db, logs.GetLoggerFromString(config.LogLevel))
	if err := render(os.Stdout, repo, *docID); err != nil {
		log.Fatal(err)
	}
}

func render(out io.Writer, repo repositories.IScanEventRepository, docID string) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Key", "Time", "Doc ID", "Flow", "Outcome", "Gate", "Duration", "Reason"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err := repo.All(func(key string, event domain.ScanEvent) error {
		if docID != "" && event.DocID != docID {
			return nil
		}
		table.Append(toRow(key, event))
		return nil
	})
	if err != nil {
		return err
	}
	table.Render()
	return nil
}

func toRow(key string, event domain.ScanEvent) []string {
	gate := "-"
	if event.GateCycled {
		gate = "cycled"
	}
	flow := string(event.Flow)
	if flow == "" {
		flow = "-"
	}
	// The key suffix is a uuid, keep its first block for readability
	if i := strings.LastIndex(key, ":"); i > 0 && len(key)-i > 9 {
		key = key[:i+9]
	}
	return []string{
		key,
		event.At.Format("2006-01-02 15:04:05"),
		event.DocID,
		flow,
		string(event.Outcome),
		gate,
		fmt.Sprintf("%dms", event.DurationMs),
		event.Reason,
	}
}
