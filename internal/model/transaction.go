package model

import (
	"encoding/json"
	"fmt"
)

// Provider identifies the custodial service holding a payee's funds.
type Provider string

const (
	Uphold   Provider = "uphold"
	Bitflyer Provider = "bitflyer"
	Gemini   Provider = "gemini"
)

// ParseProvider validates a provider name from the command line.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case Uphold, Bitflyer, Gemini:
		return Provider(s), nil
	}
	return "", fmt.Errorf("unsupported provider %q (want uphold, bitflyer or gemini)", s)
}

// TransactionType is the payout transaction category.
type TransactionType string

const (
	TypeContribution     TransactionType = "contribution"
	TypeReferral         TransactionType = "referral"
	TypeAdsDirectDeposit TransactionType = "adsDirectDeposit"
)

// AdsTransaction is a raw ads payout record as exported upstream.
// Probi is the amount in the smallest unit (10^18 probi = 1 BAT).
type AdsTransaction struct {
	WalletProvider string `json:"walletProvider"`
	Probi          Probi  `json:"probi"`
	Publisher      string `json:"publisher"`
	Address        string `json:"address,omitempty"`
	TransactionID  string `json:"transactionId"`
	Type           string `json:"type"`
	Amount         string `json:"amount,omitempty"`
}

// SettlementRecord is the normalized shape the settlement tool consumes.
// It is also the input shape for publishers-mode payout files.
type SettlementRecord struct {
	Publisher        string `json:"publisher"`
	Address          string `json:"address,omitempty"`
	Type             string `json:"type"`
	Amount           string `json:"amount,omitempty"`
	WalletProvider   string `json:"wallet_provider,omitempty"`
	WalletProviderID string `json:"wallet_provider_id"`
	BAT              string `json:"bat"`
	Owner            string `json:"owner"`
	PayoutReportID   string `json:"payout_report_id,omitempty"`
}

// PayoutReportEntry is one payment in an operator payout report.
// Amount stays a json.Number so the exact decimal text reaches the
// decimal parser without a float64 detour.
type PayoutReportEntry struct {
	Amount    json.Number `json:"amount"`
	Custodian string      `json:"custodian"`
	Currency  string      `json:"currency"`
	PayoutID  string      `json:"payoutId"`
}
