// Package payout runs the conversion pipeline: load, filter,
// normalize, merge, partition, write, report.
package payout

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/payops-dev/payoutconv/internal/batch"
	"github.com/payops-dev/payoutconv/internal/config"
	"github.com/payops-dev/payoutconv/internal/group"
	"github.com/payops-dev/payoutconv/internal/model"
	"github.com/payops-dev/payoutconv/internal/normalize"
)

// Service converts payout files for the settlement tool.
type Service struct {
	registry  *normalize.Registry
	rounding  normalize.Rounding
	batchSize int
	outDir    string
	log       zerolog.Logger
}

// Options configures a conversion Service.
type Options struct {
	Rounding  normalize.Rounding
	BatchSize int // 0 means config.DefaultBatchSize
	OutputDir string
	Logger    zerolog.Logger
}

// NewService creates a conversion Service.
func NewService(opts Options) *Service {
	if opts.BatchSize == 0 {
		opts.BatchSize = config.DefaultBatchSize
	}
	return &Service{
		registry:  normalize.DefaultRegistry(opts.Rounding),
		rounding:  opts.Rounding,
		batchSize: opts.BatchSize,
		outDir:    opts.OutputDir,
		log:       opts.Logger,
	}
}

// AdsResult reports what an ads-mode conversion produced.
type AdsResult struct {
	Files   []string // output filenames in write order
	Written int      // records across all files
	Skipped int      // records for other providers
	Total   decimal.Decimal
}

// ConvertAds converts a raw ads payout file for one provider. Uphold
// output is a single file; bitflyer and gemini output is split into
// batches of at most the configured size, suffix counting from 1.
func (s *Service) ConvertAds(inputPath string, provider model.Provider) (*AdsResult, error) {
	normalizer := s.registry.Get(provider)
	if normalizer == nil {
		return nil, fmt.Errorf("no normalizer registered for provider %q", provider)
	}

	txs, err := ReadAdsFile(inputPath)
	if err != nil {
		return nil, err
	}

	var records []model.SettlementRecord
	total := decimal.Zero
	skipped := 0
	for i, tx := range txs {
		if tx.WalletProvider != string(provider) {
			skipped++
			continue
		}
		rec, err := normalizer.Normalize(tx)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		bat, err := decimal.NewFromString(rec.BAT)
		if err != nil {
			return nil, fmt.Errorf("record %d: parsing bat %q: %w", i, rec.BAT, err)
		}
		total = total.Add(bat)
		records = append(records, rec)
	}

	base := inputBase(inputPath)
	var files []string
	if provider == model.Uphold {
		name := adsFilename(provider, base)
		if err := writeRecords(filepath.Join(s.outDir, name), records); err != nil {
			return nil, err
		}
		files = append(files, name)
	} else {
		for n, chunk := range batch.Chunk(records, s.batchSize) {
			name := adsBatchFilename(provider, base, n+1)
			if err := writeRecords(filepath.Join(s.outDir, name), chunk); err != nil {
				return nil, err
			}
			files = append(files, name)
		}
	}

	s.log.Info().
		Str("provider", string(provider)).
		Int("written", len(records)).
		Int("skipped", skipped).
		Str("total_bat", total.String()).
		Int("files", len(files)).
		Msg("ads conversion complete")

	return &AdsResult{
		Files:   files,
		Written: len(records),
		Skipped: skipped,
		Total:   total,
	}, nil
}

// PublishersResult reports what a publishers-mode conversion produced.
type PublishersResult struct {
	ContributionsFile string
	ReferralsFile     string
	Contributions     int
	Referrals         int
	ContributionTotal decimal.Decimal
	ReferralTotal     decimal.Decimal
	Total             decimal.Decimal
	SkippedType       int // records with an unrecognized type
	DroppedKeys       int // records with no wallet_provider_id
}

// ConvertPublishers converts a publisher payout file for one provider:
// keep records destined for the provider, merge same-wallet bitFlyer
// records, apply provider rounding, then split into contribution and
// referral files.
func (s *Service) ConvertPublishers(inputPath string, provider model.Provider) (*PublishersResult, error) {
	recs, err := ReadPublishersFile(inputPath)
	if err != nil {
		return nil, err
	}

	var kept []model.SettlementRecord
	droppedKeys := 0
	for _, rec := range recs {
		if rec.WalletProviderID == "" {
			droppedKeys++
			s.log.Warn().
				Str("publisher", rec.Publisher).
				Str("type", rec.Type).
				Msg("record has no wallet_provider_id, excluded")
			continue
		}
		if !strings.HasPrefix(rec.WalletProviderID, string(provider)) {
			continue
		}
		kept = append(kept, rec)
	}

	merged, _, err := group.Flatten(kept)
	if err != nil {
		return nil, err
	}

	for i := range merged {
		if !strings.HasPrefix(merged[i].WalletProviderID, string(model.Bitflyer)) {
			continue
		}
		bat, err := decimal.NewFromString(merged[i].BAT)
		if err != nil {
			return nil, fmt.Errorf("record %s: parsing bat %q: %w", merged[i].WalletProviderID, merged[i].BAT, err)
		}
		merged[i].BAT = s.rounding.Apply(bat, normalize.BitflyerPlaces).String()
	}

	var contributions, referrals []model.SettlementRecord
	contributionTotal := decimal.Zero
	referralTotal := decimal.Zero
	skippedType := 0
	for _, rec := range merged {
		bat, err := decimal.NewFromString(rec.BAT)
		if err != nil {
			return nil, fmt.Errorf("record %s: parsing bat %q: %w", rec.WalletProviderID, rec.BAT, err)
		}
		switch rec.Type {
		case string(model.TypeContribution):
			contributions = append(contributions, rec)
			contributionTotal = contributionTotal.Add(bat)
		case string(model.TypeReferral):
			referrals = append(referrals, rec)
			referralTotal = referralTotal.Add(bat)
		default:
			skippedType++
			s.log.Warn().
				Str("type", rec.Type).
				Str("wallet_provider_id", rec.WalletProviderID).
				Msg("unrecognized transaction type, excluded from output")
		}
	}

	base := inputBase(inputPath)
	contributionsFile := publishersFilename(base, provider, "contributions")
	referralsFile := publishersFilename(base, provider, "referrals")
	if err := writeRecords(filepath.Join(s.outDir, contributionsFile), contributions); err != nil {
		return nil, err
	}
	if err := writeRecords(filepath.Join(s.outDir, referralsFile), referrals); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("provider", string(provider)).
		Int("contributions", len(contributions)).
		Int("referrals", len(referrals)).
		Int("skipped_type", skippedType).
		Int("dropped_keys", droppedKeys).
		Str("total_bat", contributionTotal.Add(referralTotal).String()).
		Msg("publishers conversion complete")

	return &PublishersResult{
		ContributionsFile: contributionsFile,
		ReferralsFile:     referralsFile,
		Contributions:     len(contributions),
		Referrals:         len(referrals),
		ContributionTotal: contributionTotal,
		ReferralTotal:     referralTotal,
		Total:             contributionTotal.Add(referralTotal),
		SkippedType:       skippedType,
		DroppedKeys:       droppedKeys,
	}, nil
}
