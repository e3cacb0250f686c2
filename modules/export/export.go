// Package export writes one reconciliation batch per poll option to disk,
// as indented JSON and as CSV with a fixed header.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"regexp"
	"strconv"

	"dao-watchdog/lib/logger"
	"dao-watchdog/modules/reconcile"
)

var unsafeNameChars = regexp.MustCompile(`[^\w\-]`)

var csvHeader = []string{
	"nickname",
	"userid",
	"weight_metaforo",
	"weight_onchain_floored",
	"need_review",
	"address",
	"address_weight_floored",
	"explorer_url",
}

type Exporter struct {
	baseDir string
	log     logger.Logger
}

func New(baseDir string, log logger.Logger) *Exporter {
	return &Exporter{baseDir: baseDir, log: log}
}

// ExportBatch writes the records for one poll option and returns the paths
// it created. Layout: <base>/<threadID>/<optionName>_<timestamp>.{json,csv}
// with unsafe option name characters replaced.
func (e *Exporter) ExportBatch(threadID int64, optionName, timestamp string, records []reconcile.Record) ([]string, error) {
	dir := path.Join(e.baseDir, strconv.FormatInt(threadID, 10))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	safeName := unsafeNameChars.ReplaceAllString(optionName, "_")
	jsonPath := path.Join(dir, safeName+"_"+timestamp+".json")
	csvPath := path.Join(dir, safeName+"_"+timestamp+".csv")

	if err := e.writeJSON(jsonPath, records); err != nil {
		return nil, err
	}
	e.log.Info("JSON file saved to:", jsonPath)

	if err := e.writeCSV(csvPath, records); err != nil {
		return nil, err
	}
	e.log.Info("CSV file saved to:", csvPath)

	return []string{jsonPath, csvPath}, nil
}

func (e *Exporter) writeJSON(p string, records []reconcile.Record) error {
	b, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0644)
}

func (e *Exporter) writeCSV(p string, records []reconcile.Record) error {
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Nickname,
			strconv.FormatInt(r.UserID, 10),
			formatWeight(r.WeightMetaforo),
			strconv.FormatInt(r.WeightOnchainFloored, 10),
			strconv.FormatBool(r.NeedReview),
			r.Address,
			strconv.FormatInt(r.AddressWeightFloored, 10),
			r.ExplorerURL,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatWeight(w float64) string {
	if w == float64(int64(w)) {
		return strconv.FormatInt(int64(w), 10)
	}
	return fmt.Sprintf("%v", w)
}
