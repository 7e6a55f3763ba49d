package payout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/payops-dev/payoutconv/internal/model"
)

// ReadAdsFile reads a JSON array of raw ads payout transactions.
func ReadAdsFile(path string) ([]model.AdsTransaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var txs []model.AdsTransaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("parsing %s: expected a JSON array of transactions: %w", path, err)
	}
	return txs, nil
}

// ReadPublishersFile reads a JSON array of publisher payout records.
func ReadPublishersFile(path string) ([]model.SettlementRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var recs []model.SettlementRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing %s: expected a JSON array of records: %w", path, err)
	}
	return recs, nil
}

// ReadPayoutReport reads an operator payout report.
func ReadPayoutReport(path string) ([]model.PayoutReportEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var entries []model.PayoutReportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: expected a JSON array of payments: %w", path, err)
	}
	return entries, nil
}

// writeRecords writes records as a 4-space indented JSON array, the
// format the settlement tool's uploader expects. A nil slice is
// written as an empty array, never null.
func writeRecords(path string, records []model.SettlementRecord) error {
	if records == nil {
		records = []model.SettlementRecord{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// inputBase strips the directory and .json extension from an input
// path; output filenames are derived from it.
func inputBase(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".json")
}

// adsBatchFilename names one batch of batched ads output.
func adsBatchFilename(provider model.Provider, base string, n int) string {
	return fmt.Sprintf("%s_%s_converted_fixed_%d.json", provider, base, n)
}

// adsFilename names unbatched ads output.
func adsFilename(provider model.Provider, base string) string {
	return fmt.Sprintf("%s_%s_converted.json", provider, base)
}

// publishersFilename names one bucket of publishers output; bucket is
// "contributions" or "referrals".
func publishersFilename(base string, provider model.Provider, bucket string) string {
	return fmt.Sprintf("%s-%s-%s.json", base, provider, bucket)
}
