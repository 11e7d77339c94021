package raffle

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/code-payments/mad-raffle/pkg/metrics"
	"github.com/code-payments/mad-raffle/pkg/solana"
	"github.com/code-payments/mad-raffle/pkg/solana/tokenmetadata"
)

// SimpleNFT is a wallet-held NFT of the raffle collection, ready for display.
type SimpleNFT struct {
	Mint                 ed25519.PublicKey
	Name                 string
	SellerFeeBasisPoints uint16
	Creators             []tokenmetadata.Creator
	Collection           ed25519.PublicKey
	Verified             bool
	Image                string
	Uri                  string
}

// FetchUserNfts lists the wallet's NFTs that belong to the raffle collection,
// loading their off-chain metadata. NFTs whose off-chain metadata can't be
// loaded are returned with an empty name and image.
func (c *Client) FetchUserNfts(ctx context.Context) ([]*SimpleNFT, error) {
	owner, err := c.requireWallet()
	if err != nil {
		return nil, err
	}

	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "FetchUserNfts")
	defer tracer.End()

	mints, err := c.tokens.GetNftMints(owner)
	if err != nil {
		tracer.OnError(err)
		return nil, err
	}
	if len(mints) == 0 {
		return nil, nil
	}

	addresses := make([]ed25519.PublicKey, len(mints))
	for i, mint := range mints {
		addresses[i], _, err = tokenmetadata.GetMetadataAddress(mint)
		if err != nil {
			return nil, err
		}
	}

	infos, err := c.sc.GetMultipleAccounts(addresses, c.commitment(ctx))
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "failed to get metadata accounts")
	}

	var collected []*collectionNft
	for i, info := range infos {
		if info == nil {
			continue
		}

		var metadata tokenmetadata.MetadataAccount
		if err := metadata.Unmarshal(info.Data); err != nil {
			c.log.WithError(err).WithField("mint", solana.PublicKeyToBase58(mints[i])).Debug("skipping undecodable metadata")
			continue
		}
		if !c.inCollection(&metadata) {
			continue
		}

		collected = append(collected, &collectionNft{
			nft: &SimpleNFT{
				Mint:                 mints[i],
				SellerFeeBasisPoints: metadata.SellerFeeBasisPoints,
				Creators:             metadata.Creators,
				Collection:           metadata.Collection.Key,
				Verified:             metadata.Collection.Verified,
				Uri:                  metadata.Uri,
			},
			uri: metadata.Uri,
		})
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(int(max(c.conf.metadataConcurrency.Get(ctx), 1)))
	for _, item := range collected {
		item := item
		g.Go(func() error {
			c.loadOffChainMetadata(groupCtx, item)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nfts := make([]*SimpleNFT, len(collected))
	for i, item := range collected {
		nfts[i] = item.nft
	}
	return nfts, nil
}

type collectionNft struct {
	nft *SimpleNFT
	uri string
}

func (c *Client) inCollection(metadata *tokenmetadata.MetadataAccount) bool {
	if metadata.Collection == nil {
		return false
	}
	if !bytes.Equal(metadata.Collection.Key, c.cluster.Collection) {
		return false
	}
	return !c.cluster.RequireVerifiedCollection || metadata.Collection.Verified
}

func (c *Client) loadOffChainMetadata(ctx context.Context, item *collectionNft) {
	if item.uri == "" {
		return
	}

	document, err := c.metadata.Fetch(ctx, item.uri)
	if err != nil {
		c.log.WithError(err).WithField("mint", solana.PublicKeyToBase58(item.nft.Mint)).Debug("failed to load off-chain metadata")
		return
	}

	item.nft.Name = document.Name
	item.nft.Image = document.Image
	if document.Uri != "" {
		item.nft.Uri = document.Uri
	}
}
