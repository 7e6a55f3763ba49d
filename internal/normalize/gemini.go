package normalize

import (
	"fmt"

	"github.com/payops-dev/payoutconv/internal/model"
)

// GeminiNormalizer maps gemini ads transactions. The deposit id comes
// from the publisher channel like uphold, but the channel and owner
// are rewritten to the wallet address like bitFlyer, and the amount is
// never rounded.
type GeminiNormalizer struct{}

// Provider returns the provider this normalizer handles.
func (n *GeminiNormalizer) Provider() model.Provider { return model.Gemini }

// Normalize converts one gemini transaction.
func (n *GeminiNormalizer) Normalize(tx model.AdsTransaction) (model.SettlementRecord, error) {
	if tx.Address == "" {
		return model.SettlementRecord{}, fmt.Errorf("transaction %s: gemini record missing address", tx.TransactionID)
	}

	depositID, err := publisherID(tx.Publisher)
	if err != nil {
		return model.SettlementRecord{}, err
	}

	bat, err := tx.Probi.BAT()
	if err != nil {
		return model.SettlementRecord{}, fmt.Errorf("transaction %s: %w", tx.TransactionID, err)
	}

	wallet := "wallet:" + tx.Address
	return model.SettlementRecord{
		Publisher:        wallet,
		Address:          tx.Address,
		Type:             tx.Type,
		Amount:           tx.Amount,
		WalletProvider:   string(model.Gemini),
		WalletProviderID: "gemini#id:" + depositID,
		BAT:              bat.String(),
		Owner:            wallet,
		PayoutReportID:   tx.TransactionID,
	}, nil
}
