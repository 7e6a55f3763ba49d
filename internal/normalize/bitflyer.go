package normalize

import (
	"fmt"

	"github.com/payops-dev/payoutconv/internal/model"
)

// BitflyerPlaces is the decimal precision bitFlyer accepts for deposit
// amounts.
const BitflyerPlaces = 2

// BitflyerNormalizer maps bitFlyer ads transactions. Deposits address
// the custodial account id directly, so publisher and owner are both
// rewritten to the wallet channel and the amount is rounded to what
// the deposit API accepts.
type BitflyerNormalizer struct {
	Rounding Rounding
}

// Provider returns the provider this normalizer handles.
func (n *BitflyerNormalizer) Provider() model.Provider { return model.Bitflyer }

// Normalize converts one bitFlyer transaction.
func (n *BitflyerNormalizer) Normalize(tx model.AdsTransaction) (model.SettlementRecord, error) {
	if tx.Address == "" {
		return model.SettlementRecord{}, fmt.Errorf("transaction %s: bitflyer record missing address", tx.TransactionID)
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
		WalletProvider:   string(model.Bitflyer),
		WalletProviderID: "bitflyer#id:" + tx.Address,
		BAT:              n.Rounding.Apply(bat, BitflyerPlaces).String(),
		Owner:            wallet,
		PayoutReportID:   tx.TransactionID,
	}, nil
}
