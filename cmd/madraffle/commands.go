package main

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/code-payments/mad-raffle/pkg/apierror"
	"github.com/code-payments/mad-raffle/pkg/raffle"
	"github.com/code-payments/mad-raffle/pkg/solana"
)

// runtime is what every command runs against
type runtime struct {
	log    *logrus.Entry
	config Config
	client *raffle.Client
}

type commandFunc func(ctx context.Context, r *runtime, args []string) (interface{}, error)

// appCommands lists every subcommand. None take flags, so arguments such as a
// negative raffle id reach validation untouched.
func appCommands() []cli.Command {
	commands := []cli.Command{
		{
			Name:   "current",
			Usage:  "show the current raffle",
			Action: action(runCurrent),
		},
		{
			Name:      "details",
			ArgsUsage: "[raffle id]",
			Usage:     "show a raffle and its pot, defaulting to the current raffle",
			Action:    action(runDetails),
		},
		{
			Name:   "history",
			Usage:  "list every past raffle, updating the local history",
			Action: action(runHistory),
		},
		{
			Name:   "scoreboard",
			Usage:  "rank users by bonus points",
			Action: action(runScoreboard),
		},
		{
			Name:   "nfts",
			Usage:  "list the wallet's NFTs eligible for sale",
			Action: action(runNfts),
		},
		{
			Name:   "balance",
			Usage:  "show the wallet's balance",
			Action: action(runBalance),
		},
		{
			Name:   "initialize",
			Usage:  "initialize the program, signing as authority",
			Action: action(runInitialize),
		},
		{
			Name:   "buy",
			Usage:  "buy a ticket in the current raffle",
			Action: action(runBuy),
		},
		{
			Name:      "sell",
			ArgsUsage: "<nft mint>",
			Usage:     "sell an NFT to the current raffle, ending it",
			Action:    action(runSell),
		},
		{
			Name:      "select-winner",
			ArgsUsage: "<raffle id>",
			Usage:     "select the winner of a raffle",
			Action:    action(runSelectWinner),
		},
		{
			Name:      "pick-winner",
			ArgsUsage: "<raffle id>",
			Usage:     "select the winner of a raffle using the price feed",
			Action:    action(runPickWinner),
		},
		{
			Name:      "distribute",
			ArgsUsage: "<raffle id>",
			Usage:     "send a raffle's prize to its winner",
			Action:    action(runDistribute),
		},
		{
			Name:   "watch",
			Usage:  "periodically update the local history until interrupted",
			Action: action(runWatch),
		},
	}

	for i := range commands {
		commands[i].SkipFlagParsing = true
	}
	return commands
}

// action adapts a commandFunc to urfave/cli, exiting non-zero on failure. The
// response itself has already been written to stdout.
func action(fn commandFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		settings := &appSettings{
			configPath: c.GlobalString(configFlag.Name),
			envPath:    c.GlobalString(envFlag.Name),
		}
		if code := execute(c.Command.Name, settings, fn, c.Args()); code != 0 {
			return cli.NewExitError("", code)
		}
		return nil
	}
}

// writeResponse prints the result, or err, as an apierror.ApiResponse
func writeResponse(w io.Writer, result interface{}, err error) error {
	var response interface{}
	if err != nil {
		response = apierror.ToApiResponse[interface{}](err)
	} else {
		response = apierror.Success(result)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(response)
}

func parseRaffleId(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, apierror.MissingParameter("raffle id")
	}

	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, apierror.SolanaQueryError(apierror.InvalidArgument).WithCause(err)
	}
	return raffle.ValidateRaffleIdValue(value)
}

func parseTarget(args []string) (raffle.RaffleTarget, error) {
	if len(args) == 0 || args[0] == "current" {
		return raffle.CurrentRaffleTarget, nil
	}

	id, err := parseRaffleId(args)
	if err != nil {
		return raffle.RaffleTarget{}, err
	}
	return raffle.RaffleById(id), nil
}

func runCurrent(ctx context.Context, r *runtime, _ []string) (interface{}, error) {
	current, err := r.client.GetRafflePda(ctx, raffle.CurrentRaffleTarget)
	if err != nil {
		return nil, err
	}
	return &currentRaffleView{
		RaffleId: current.Id,
		Address:  solana.PublicKeyToBase58(current.Address),
	}, nil
}

func runDetails(ctx context.Context, r *runtime, args []string) (interface{}, error) {
	target, err := parseTarget(args)
	if err != nil {
		return nil, err
	}

	details, err := r.client.GetRaffleDetails(ctx, target)
	if err != nil {
		return nil, err
	}
	return toRaffleDetailsView(r.client, details), nil
}

func runHistory(ctx context.Context, r *runtime, _ []string) (interface{}, error) {
	records, err := r.client.UpdateRaffleHistory(ctx)
	if err != nil {
		return nil, err
	}

	// Most recent first for display
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Id > records[j].Id
	})
	return records, nil
}

func runScoreboard(ctx context.Context, r *runtime, _ []string) (interface{}, error) {
	current, err := r.client.GetCurrentRaffleId(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := r.client.GetScoreboard(ctx)
	if err != nil {
		return nil, err
	}

	ranked := raffle.RankScoreboard(entries)
	view := &scoreboardView{
		CurrentRaffle: current,
		Multiplier:    raffle.PointsMultiplier(current),
		Scores:        make([]scoreView, len(ranked)),
	}
	for i, score := range ranked {
		view.Scores[i] = scoreView{
			Rank:   score.Rank,
			User:   solana.PublicKeyToBase58(score.User),
			Points: score.Points,
		}
	}
	return view, nil
}

func runNfts(ctx context.Context, r *runtime, _ []string) (interface{}, error) {
	nfts, err := r.client.FetchUserNfts(ctx)
	if err != nil {
		return nil, err
	}
	return toNftViews(nfts), nil
}

func runBalance(ctx context.Context, r *runtime, _ []string) (interface{}, error) {
	lamports, err := r.client.GetUserBalance(ctx)
	if err != nil {
		return nil, err
	}

	wallet, _ := r.client.Wallet()
	return &balanceView{
		Address:  solana.PublicKeyToBase58(wallet.PublicKey()),
		Lamports: lamports,
		Sol:      raffle.LamportsToSol(lamports),
	}, nil
}

func runInitialize(ctx context.Context, r *runtime, _ []string) (interface{}, error) {
	ixn, err := r.client.CreateInitializeInstruction()
	if err != nil {
		return nil, err
	}
	return submit(ctx, r, raffle.TransactionKindInitialize, ixn)
}

func runBuy(ctx context.Context, r *runtime, _ []string) (interface{}, error) {
	if _, err := r.client.BindCurrentRaffle(ctx); err != nil {
		return nil, err
	}

	ixn, err := r.client.CreateBuyTicketInstruction()
	if err != nil {
		return nil, toGenerateIxError(err)
	}
	return submit(ctx, r, raffle.TransactionKindBuyTicket, ixn)
}

func runSell(ctx context.Context, r *runtime, args []string) (interface{}, error) {
	if len(args) == 0 {
		return nil, apierror.MissingParameter("nft mint")
	}
	mint, err := solana.PublicKeyFromBase58(args[0])
	if err != nil {
		return nil, apierror.ClientError("invalid nft mint").WithCause(err)
	}

	if _, err := r.client.BindCurrentRaffle(ctx); err != nil {
		return nil, err
	}

	ixn, err := r.client.CreateEndRaffleInstruction(ctx, mint)
	if err != nil {
		return nil, toGenerateIxError(err)
	}
	return submit(ctx, r, raffle.TransactionKindEndRaffle, ixn)
}

func runSelectWinner(ctx context.Context, r *runtime, args []string) (interface{}, error) {
	id, err := parseRaffleId(args)
	if err != nil {
		return nil, err
	}

	ixn, err := r.client.CreateSelectWinnerInstruction(ctx, id)
	if err != nil {
		return nil, err
	}
	return submit(ctx, r, raffle.TransactionKindSelectWinner, ixn)
}

func runPickWinner(ctx context.Context, r *runtime, args []string) (interface{}, error) {
	id, err := parseRaffleId(args)
	if err != nil {
		return nil, err
	}

	ixn, err := r.client.CreatePickWinnerInstruction(ctx, id)
	if err != nil {
		return nil, err
	}
	return submit(ctx, r, raffle.TransactionKindPickWinner, ixn)
}

func runDistribute(ctx context.Context, r *runtime, args []string) (interface{}, error) {
	id, err := parseRaffleId(args)
	if err != nil {
		return nil, err
	}

	ixn, err := r.client.CreateDistributePrizeInstruction(ctx, id)
	if err != nil {
		return nil, toGenerateIxError(err)
	}
	return submit(ctx, r, raffle.TransactionKindDistributePrize, ixn)
}

// toGenerateIxError reports an instruction build failure as a transaction
// error, keeping errors that are already classified
func toGenerateIxError(err error) error {
	if _, ok := apierror.As(err); ok {
		return err
	}
	return apierror.SolanaTxError(apierror.FailedToGenerateIx).WithCause(err)
}

func submit(ctx context.Context, r *runtime, kind raffle.TransactionKind, ixn solana.Instruction) (interface{}, error) {
	sig, err := r.client.SubmitInstructions(ctx, kind, ixn)
	if err != nil {
		return nil, err
	}
	return &signatureView{
		Kind:      kind.String(),
		Signature: sig.String(),
	}, nil
}
