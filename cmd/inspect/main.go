package main

import (
	"clinic-chat/infrastructure/storage"
	"flag"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (room:id:, room:set:, room:member:, msg:, profile:)")
	limit := flag.Int("limit", 0, "Maximum number of rows, 0 for all")
	flag.Parse()

	if err := inspect(*dbPath, *prefix, *limit); err != nil {
		fmt.Fprintf(os.Stderr, "Inspection failed: %v\n", err)
		os.Exit(1)
	}
}

func inspect(path, prefix string, limit int) error {
	// BypassLockGuard allows reading while the server holds the lock
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("error while opening badger: %w", err)
	}
	defer db.Close()

	entries, err := storage.ScanEntries(db, prefix, limit)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Entity", "At", "Detail"})
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

	for _, entry := range entries {
		entity := entry.Entity
		if len(entity) > 8 {
			entity = entity[:8]
		}
		table.Append([]string{entry.Key, entry.Kind, entity, entry.At, entry.Detail})
	}
	table.Render()
	fmt.Printf("\n%d entries under %q\n", len(entries), prefix)
	return nil
}
