package normalize

import (
	"fmt"

	"github.com/payops-dev/payoutconv/internal/model"
)

// UpholdNormalizer maps uphold ads transactions. Uphold deposits
// address the card named in the publisher channel, so the original
// publisher value is kept as both channel and owner and the amount is
// never rounded.
type UpholdNormalizer struct{}

// Provider returns the provider this normalizer handles.
func (n *UpholdNormalizer) Provider() model.Provider { return model.Uphold }

// Normalize converts one uphold transaction.
func (n *UpholdNormalizer) Normalize(tx model.AdsTransaction) (model.SettlementRecord, error) {
	cardID, err := publisherID(tx.Publisher)
	if err != nil {
		return model.SettlementRecord{}, err
	}

	bat, err := tx.Probi.BAT()
	if err != nil {
		return model.SettlementRecord{}, fmt.Errorf("transaction %s: %w", tx.TransactionID, err)
	}

	return model.SettlementRecord{
		Publisher:        tx.Publisher,
		Address:          tx.Address,
		Type:             tx.Type,
		Amount:           tx.Amount,
		WalletProvider:   string(model.Uphold),
		WalletProviderID: "uphold#card:" + cardID,
		BAT:              bat.String(),
		Owner:            tx.Publisher,
		PayoutReportID:   tx.TransactionID,
	}, nil
}
