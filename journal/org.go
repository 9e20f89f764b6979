package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/dali/pkg/id"
)

// FormatRecordOrg renders a Record as an Org-mode block. Structured facts go
// in a PROPERTIES drawer so they stay searchable.
func FormatRecordOrg(r Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s %s %s (%s)\n", strings.ToUpper(r.Kind), r.TransactionType, r.Amount, r.Asset, shortID(r.RecordID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", r.RecordID)
	if recorded, err := id.Time(r.RecordID); err == nil {
		fmt.Fprintf(&b, ":RECORDED: %s\n", recorded.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, ":PLUGIN: %s\n", r.Plugin)
	fmt.Fprintf(&b, ":UNIQUE_ID: %s\n", orUnknown(r.UniqueID))
	fmt.Fprintf(&b, ":TIMESTAMP: %s\n", r.Timestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":ASSET: %s\n", r.Asset)
	if r.FromHolder != "" || r.FromExchange != "" {
		fmt.Fprintf(&b, ":FROM: %s@%s\n", orUnknown(r.FromHolder), orUnknown(r.FromExchange))
	}
	if r.ToHolder != "" || r.ToExchange != "" {
		fmt.Fprintf(&b, ":TO: %s@%s\n", orUnknown(r.ToHolder), orUnknown(r.ToExchange))
	}
	fmt.Fprintf(&b, ":SPOT_PRICE: %s\n", orUnknown(r.SpotPrice))
	fmt.Fprintf(&b, ":FEE: %s\n", orUnknown(r.Fee))
	b.WriteString(":END:\n")
	if r.Notes != "" {
		fmt.Fprintf(&b, "%s\n", r.Notes)
	}
	return b.String()
}

// FormatRecordsOrg renders multiple records separated by blank lines.
func FormatRecordsOrg(recs []Record) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatRecordOrg(r))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
