package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payops-dev/payoutconv/internal/config"
	"github.com/payops-dev/payoutconv/internal/model"
	"github.com/payops-dev/payoutconv/internal/runlog"
)

const adsTestdata = "../../testdata/ads-payout.json"
const publishersTestdata = "../../testdata/publishers-payout.json"

func TestRunConvert_Ads(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	err := runConvert(convertOptions{
		input:     adsTestdata,
		provider:  "bitflyer",
		kind:      "ads",
		outputDir: dir,
		out:       &out,
	})
	require.NoError(t, err)

	assert.Equal(t, "Total BAT: 1.73 to bitflyer_ads-payout_converted_fixed_1.json\n", out.String())

	_, err = os.Stat(filepath.Join(dir, "bitflyer_ads-payout_converted_fixed_1.json"))
	require.NoError(t, err)

	entries, err := runlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ads", entries[0].Kind)
	assert.Equal(t, "bitflyer", entries[0].Provider)
	assert.Equal(t, "ads-payout.json", entries[0].Input)
	assert.Equal(t, 2, entries[0].Written)
	assert.Equal(t, 4, entries[0].Skipped)
	assert.Equal(t, "1.73", entries[0].TotalBAT)
	assert.Equal(t, 1, entries[0].Files)
	assert.NotEmpty(t, entries[0].RunID)
}

func TestRunConvert_Publishers(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	err := runConvert(convertOptions{
		input:     publishersTestdata,
		provider:  "bitflyer",
		kind:      "publishers",
		outputDir: dir,
		out:       &out,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"total contribution amount: 3.35\n"+
			"total referral amount: 0.5\n"+
			"total: 3.85\n",
		out.String())

	for _, name := range []string{
		"publishers-payout-bitflyer-contributions.json",
		"publishers-payout-bitflyer-referrals.json",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s", name)
	}

	entries, err := runlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "publishers", entries[0].Kind)
	assert.Equal(t, 2, entries[0].Written)
	assert.Equal(t, 2, entries[0].Skipped, "one unknown type plus one missing grouping key")
	assert.Equal(t, 2, entries[0].Files)
}

func TestRunConvert_BatchSizeOverride(t *testing.T) {
	dir := t.TempDir()

	err := runConvert(convertOptions{
		input:     adsTestdata,
		provider:  "bitflyer",
		kind:      "ads",
		outputDir: dir,
		batchSize: 1,
		out:       &bytes.Buffer{},
	})
	require.NoError(t, err)

	// Two bitflyer records at batch size 1 means two files.
	for _, name := range []string{
		"bitflyer_ads-payout_converted_fixed_1.json",
		"bitflyer_ads-payout_converted_fixed_2.json",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s", name)
	}
}

func TestRunConvert_ConfigFile(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Conversion.BatchSize = 1
	cfgPath := filepath.Join(dir, "payoutconv.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))

	err := runConvert(convertOptions{
		input:      adsTestdata,
		provider:   "bitflyer",
		kind:       "ads",
		outputDir:  dir,
		configPath: cfgPath,
		out:        &bytes.Buffer{},
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "bitflyer_ads-payout_converted_fixed_2.json"))
	assert.NoError(t, err)
}

func TestRunConvert_UnsupportedKind(t *testing.T) {
	dir := t.TempDir()

	err := runConvert(convertOptions{
		input:     adsTestdata,
		provider:  "uphold",
		kind:      "grants",
		outputDir: dir,
		out:       &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported kind")

	// Fails before any output is produced.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunConvert_UnsupportedProvider(t *testing.T) {
	err := runConvert(convertOptions{
		input:     adsTestdata,
		provider:  "paypal",
		kind:      "ads",
		outputDir: t.TempDir(),
		out:       &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestRunConvert_MalformedInput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"not":"an array"}`), 0o644))

	err := runConvert(convertOptions{
		input:     input,
		provider:  "uphold",
		kind:      "ads",
		outputDir: t.TempDir(),
		out:       &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a JSON array")
}

func TestRunConvert_OutputDirDefaultsToInputDir(t *testing.T) {
	dir := t.TempDir()

	txs := []model.AdsTransaction{{
		WalletProvider: "uphold",
		Probi:          "1000000000000000000",
		Publisher:      "card:abc",
		TransactionID:  "tx-1",
		Type:           "adsDirectDeposit",
	}}
	data, err := json.Marshal(txs)
	require.NoError(t, err)
	input := filepath.Join(dir, "payout.json")
	require.NoError(t, os.WriteFile(input, data, 0o644))

	err = runConvert(convertOptions{
		input:    input,
		provider: "uphold",
		kind:     "ads",
		out:      &bytes.Buffer{},
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "uphold_payout_converted.json"))
	assert.NoError(t, err)
}

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "convert")
	assert.Contains(t, names, "inspect")
}
