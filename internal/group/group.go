// Package group merges payout records addressed to the same custodial
// destination so the settlement tool sends one deposit per wallet.
package group

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/payops-dev/payoutconv/internal/model"
)

// mergePrefix marks the wallet provider whose records are merged.
// Only bitFlyer deposits benefit: its API charges per deposit call, so
// collapsing same-wallet records cuts the call count without changing
// any payee's total.
const mergePrefix = "bitflyer"

// Flatten merges records whose wallet_provider_id shares the bitFlyer
// prefix into a single record per id whose bat is the exact decimal
// sum of the merged amounts. All non-amount fields come from the first
// record seen for the id; later records' metadata is discarded. Output
// order is the insertion order of first-seen ids, with non-bitFlyer
// records passing through in place. Records with an empty
// wallet_provider_id are dropped and counted, never merged.
func Flatten(records []model.SettlementRecord) ([]model.SettlementRecord, int, error) {
	var out []model.SettlementRecord
	sums := make(map[string]decimal.Decimal)
	position := make(map[string]int)
	dropped := 0

	for i, rec := range records {
		id := rec.WalletProviderID
		if id == "" {
			dropped++
			continue
		}
		if !strings.HasPrefix(id, mergePrefix) {
			out = append(out, rec)
			continue
		}

		bat, err := decimal.NewFromString(rec.BAT)
		if err != nil {
			return nil, 0, fmt.Errorf("record %d (%s): parsing bat %q: %w", i, id, rec.BAT, err)
		}

		if pos, seen := position[id]; seen {
			sums[id] = sums[id].Add(bat)
			out[pos].BAT = sums[id].String()
			continue
		}

		position[id] = len(out)
		sums[id] = bat
		out = append(out, rec)
	}

	return out, dropped, nil
}
