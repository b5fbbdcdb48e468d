package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"

	"flack/domain"
)

// inspect dumps a key range of the chat store as a table, without
// disturbing a running server.
func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	// Default to "msg:" to skip the secondary pointer keys (msgid:, member:, userid:)
	prefix := flag.String("prefix", "msg:", "Prefix to scan")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	color.Cyan.Printf("Scanning %s with prefix %q\n", *dbPath, *prefix)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Timestamp", "Entity ID", "Channel", "Detail"})
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

	rows := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			rawKey := string(item.Key())

			// Pointer keys hold IDs, not documents
			if strings.HasPrefix(rawKey, "msgid:") ||
				strings.HasPrefix(rawKey, "member:") ||
				strings.HasPrefix(rawKey, "userid:") {
				continue
			}

			err := item.Value(func(v []byte) error {
				table.Append(mapRow(rawKey, v))
				rows++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	color.Green.Printf("%d entries\n", rows)
}

func mapRow(key string, val []byte) []string {
	switch {
	case strings.HasPrefix(key, "msg:"), strings.HasPrefix(key, "reply:"):
		var view domain.MessageView
		if err := json.Unmarshal(val, &view); err != nil {
			return []string{key, "?", "", "", "", fmt.Sprintf("unmarshal failed: %v", err)}
		}
		kind := "MESSAGE"
		if strings.HasPrefix(key, "reply:") {
			kind = "REPLY"
		}
		return []string{key, kind, view.CreatedAt.Format("15:04:05"), shortID(view.ID), view.ChannelID, view.Text}

	case strings.HasPrefix(key, "channel:"):
		var channel domain.Channel
		if err := json.Unmarshal(val, &channel); err != nil {
			return []string{key, "?", "", "", "", fmt.Sprintf("unmarshal failed: %v", err)}
		}
		kind := "CHANNEL"
		if channel.Direct {
			kind = "DIRECT"
		}
		return []string{key, kind, channel.CreatedAt.Format("15:04:05"), shortID(channel.ID), "", channel.Name}

	case strings.HasPrefix(key, "user:"):
		var user domain.User
		if err := json.Unmarshal(val, &user); err != nil {
			return []string{key, "?", "", "", "", fmt.Sprintf("unmarshal failed: %v", err)}
		}
		return []string{key, "USER", user.CreatedAt.Format("15:04:05"), shortID(user.ID), "", user.Email}

	default:
		return []string{key, "RAW", "", "", "", string(val)}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	return badger.Open(opts)
}
