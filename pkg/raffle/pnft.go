package raffle

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/metrics"
	"github.com/code-payments/mad-raffle/pkg/solana"
	"github.com/code-payments/mad-raffle/pkg/solana/madraffle"
	"github.com/code-payments/mad-raffle/pkg/solana/tokenmetadata"
)

// PnftAccounts are the auxiliary accounts the token metadata program needs
// to move a programmable NFT between two token accounts.
type PnftAccounts struct {
	Mint     ed25519.PublicKey
	Metadata ed25519.PublicKey
	Edition  ed25519.PublicKey

	SourceAta         ed25519.PublicKey
	SourceTokenRecord ed25519.PublicKey
	TargetAta         ed25519.PublicKey
	TargetTokenRecord ed25519.PublicKey

	// Royalty recipients in metadata order
	Creators []ed25519.PublicKey

	// RuleSet is nil when the metadata declares none
	RuleSet           ed25519.PublicKey
	RulesAccPresent   bool
	AuthorizationData *madraffle.AuthorizationData

	// RemainingAccounts holds the rule set, read only, when one is declared
	// and is empty otherwise
	RemainingAccounts []solana.AccountMeta
}

// PreparePnftAccounts derives every account needed to transfer mint from
// sourceAta to targetAta, reading the mint's metadata account once.
func (c *Client) PreparePnftAccounts(ctx context.Context, mint, sourceAta, targetAta ed25519.PublicKey) (*PnftAccounts, error) {
	if !c.IsReady() {
		return nil, ErrNotReady
	}

	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "PreparePnftAccounts")
	defer tracer.End()

	metadataAddress, _, err := tokenmetadata.GetMetadataAddress(mint)
	if err != nil {
		return nil, err
	}

	info, err := c.sc.GetAccountInfo(metadataAddress, c.commitment(ctx))
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrapf(err, "failed to get metadata account for mint %s", solana.PublicKeyToBase58(mint))
	}

	var metadata tokenmetadata.MetadataAccount
	if err := metadata.Unmarshal(info.Data); err != nil {
		tracer.OnError(err)
		return nil, errors.Wrapf(err, "failed to decode metadata account for mint %s", solana.PublicKeyToBase58(mint))
	}

	if len(metadata.Creators) > madraffle.MaxCreators {
		return nil, madraffle.ErrTooManyCreators
	}

	edition, _, err := tokenmetadata.GetMasterEditionAddress(mint)
	if err != nil {
		return nil, err
	}
	sourceTokenRecord, _, err := tokenmetadata.GetTokenRecordAddress(&tokenmetadata.GetTokenRecordAddressArgs{
		Mint:         mint,
		TokenAccount: sourceAta,
	})
	if err != nil {
		return nil, err
	}
	targetTokenRecord, _, err := tokenmetadata.GetTokenRecordAddress(&tokenmetadata.GetTokenRecordAddressArgs{
		Mint:         mint,
		TokenAccount: targetAta,
	})
	if err != nil {
		return nil, err
	}

	creators := make([]ed25519.PublicKey, len(metadata.Creators))
	for i, creator := range metadata.Creators {
		creators[i] = creator.Address
	}

	accounts := &PnftAccounts{
		Mint:     mint,
		Metadata: metadataAddress,
		Edition:  edition,

		SourceAta:         sourceAta,
		SourceTokenRecord: sourceTokenRecord,
		TargetAta:         targetAta,
		TargetTokenRecord: targetTokenRecord,

		Creators:          creators,
		RemainingAccounts: []solana.AccountMeta{},
	}

	if ruleSet, ok := metadata.RuleSet(); ok {
		accounts.RuleSet = ruleSet
		accounts.RulesAccPresent = true
		accounts.RemainingAccounts = append(accounts.RemainingAccounts, solana.NewReadonlyAccountMeta(ruleSet, false))
	}

	return accounts, nil
}

func (a *PnftAccounts) transferAccounts() madraffle.PnftTransferAccounts {
	return madraffle.PnftTransferAccounts{
		Source:           a.SourceAta,
		Destination:      a.TargetAta,
		NftMint:          a.Mint,
		NftMetadata:      a.Metadata,
		Edition:          a.Edition,
		OwnerTokenRecord: a.SourceTokenRecord,
		DestTokenRecord:  a.TargetTokenRecord,
	}
}
