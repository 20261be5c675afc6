package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"
)

func ExportJSON(w io.Writer, msgs []Message) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(msgs)
}

func ExportCSV(w io.Writer, msgs []Message) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "received_at", "status", "detail", "body"}); err != nil {
		return err
	}
	for _, m := range msgs {
		row := []string{
			strconv.FormatInt(m.ID, 10),
			m.ReceivedAt.UTC().Format(time.RFC3339),
			string(m.Status),
			m.Detail,
			m.Body,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
