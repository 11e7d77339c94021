package main

import (
	"github.com/shopspring/decimal"

	"github.com/code-payments/mad-raffle/pkg/raffle"
	"github.com/code-payments/mad-raffle/pkg/solana"
)

type currentRaffleView struct {
	RaffleId uint64 `json:"raffleId"`
	Address  string `json:"address"`
}

type prizeView struct {
	Mint string `json:"mint"`
	Ata  string `json:"ata"`
	Sent bool   `json:"sent"`
}

type raffleDetailsView struct {
	RaffleId     uint64          `json:"raffleId"`
	Address      string          `json:"address"`
	Version      uint8           `json:"version"`
	Active       bool            `json:"active"`
	StartTime    int64           `json:"startTime"`
	EndTime      int64           `json:"endTime"`
	TotalTickets uint32          `json:"totalTickets"`
	UserTickets  *uint32         `json:"userTickets,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	Available    decimal.Decimal `json:"available"`
	SellerShare  decimal.Decimal `json:"sellerShare"`
	Prize        *prizeView      `json:"prize,omitempty"`
	Winner       *string         `json:"winner,omitempty"`
}

func toRaffleDetailsView(client *raffle.Client, details *raffle.RaffleDetails) *raffleDetailsView {
	view := &raffleDetailsView{
		RaffleId:     details.Id,
		Address:      solana.PublicKeyToBase58(details.Address),
		Version:      details.Version,
		Active:       details.Active,
		StartTime:    details.StartTime,
		EndTime:      details.EndTime,
		TotalTickets: client.GetTotalTickets(details),
		Balance:      raffle.LamportsToSol(details.Lamports),
		Available:    raffle.SignedLamportsToSol(details.AvailableLamports),
		SellerShare:  raffle.LamportsToSol(details.SellerShareLamports),
	}

	if wallet, ok := client.Wallet(); ok {
		tickets := client.GetUserTickets(wallet.PublicKey(), details)
		view.UserTickets = &tickets
	}
	if details.Prize != nil {
		view.Prize = &prizeView{
			Mint: solana.PublicKeyToBase58(details.Prize.Mint),
			Ata:  solana.PublicKeyToBase58(details.Prize.Ata),
			Sent: details.Prize.Sent,
		}
	}
	if len(details.Winner) > 0 {
		winner := solana.PublicKeyToBase58(details.Winner)
		view.Winner = &winner
	}
	return view
}

type scoreView struct {
	Rank   int    `json:"rank"`
	User   string `json:"user"`
	Points uint32 `json:"points"`
}

type scoreboardView struct {
	CurrentRaffle uint64      `json:"currentRaffle"`
	Multiplier    uint32      `json:"multiplier"`
	Scores        []scoreView `json:"scores"`
}

type nftView struct {
	Mint                 string `json:"mint"`
	Name                 string `json:"name"`
	Image                string `json:"image,omitempty"`
	Uri                  string `json:"uri,omitempty"`
	SellerFeeBasisPoints uint16 `json:"sellerFeeBasisPoints"`
	Verified             bool   `json:"verified"`
}

func toNftViews(nfts []*raffle.SimpleNFT) []nftView {
	views := make([]nftView, len(nfts))
	for i, nft := range nfts {
		views[i] = nftView{
			Mint:                 solana.PublicKeyToBase58(nft.Mint),
			Name:                 nft.Name,
			Image:                nft.Image,
			Uri:                  nft.Uri,
			SellerFeeBasisPoints: nft.SellerFeeBasisPoints,
			Verified:             nft.Verified,
		}
	}
	return views
}

type balanceView struct {
	Address  string          `json:"address"`
	Lamports uint64          `json:"lamports"`
	Sol      decimal.Decimal `json:"sol"`
}

type signatureView struct {
	Kind      string `json:"kind"`
	Signature string `json:"signature"`
}
