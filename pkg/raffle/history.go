package raffle

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/code-payments/mad-raffle/pkg/metrics"
	"github.com/code-payments/mad-raffle/pkg/raffle/data/history"
	"github.com/code-payments/mad-raffle/pkg/solana"
)

// UpdateRaffleHistory returns every raffle before the current one, in
// ascending id order. Cached raffles are returned as is. Others are fetched,
// and those whose prize has been sent are added to the cache. Raffles that
// fail to load are logged and left out of the result.
func (c *Client) UpdateRaffleHistory(ctx context.Context) ([]*history.LocalRaffle, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "UpdateRaffleHistory")
	defer tracer.End()

	current, err := c.GetCurrentRaffleId(ctx)
	if err != nil {
		tracer.OnError(err)
		return nil, err
	}

	log := c.log.WithFields(logrus.Fields{
		"method":         "UpdateRaffleHistory",
		"current_raffle": current,
	})

	cached := c.loadHistory(ctx, log)

	var result []*history.LocalRaffle
	for id := uint64(1); id < current; id++ {
		if record, ok := history.Find(cached, id); ok {
			result = append(result, record)
			continue
		}

		log := log.WithField("raffle_id", id)

		details, err := c.GetRaffleDetails(ctx, RaffleById(id))
		if err != nil {
			log.WithError(err).Warn("failed to fetch raffle details")
			continue
		}

		record := c.toLocalRaffle(details)
		result = append(result, record)

		if record.Claimed {
			cached = append(cached, record)
			c.saveHistory(ctx, log, cached)
		}
	}

	tracer.AddAttribute("raffles", len(result))
	return result, nil
}

func (c *Client) loadHistory(ctx context.Context, log *logrus.Entry) []*history.LocalRaffle {
	if c.history == nil {
		return nil
	}

	records, err := c.history.Load(ctx)
	if err == history.ErrNotFound {
		return nil
	} else if err != nil {
		log.WithError(err).Warn("failed to load raffle history, starting empty")
		return nil
	}
	return records
}

func (c *Client) saveHistory(ctx context.Context, log *logrus.Entry, records []*history.LocalRaffle) {
	if c.history == nil {
		return
	}

	if err := c.history.Save(ctx, records); err != nil {
		log.WithError(err).Warn("failed to save raffle history")
	}
}

func (c *Client) toLocalRaffle(details *RaffleDetails) *history.LocalRaffle {
	record := &history.LocalRaffle{
		Id:         details.Id,
		Version:    details.Version,
		Bump:       details.Bump,
		Active:     details.Active,
		NumTickets: c.GetTotalTickets(details),
		StartTime:  details.StartTime,
		EndTime:    details.EndTime,
	}

	if details.Prize != nil {
		mint := solana.PublicKeyToBase58(details.Prize.Mint)
		record.PrizeNft = &mint
		record.Claimed = details.Prize.Sent
	}
	if len(details.Winner) > 0 {
		winner := solana.PublicKeyToBase58(details.Winner)
		record.Winner = &winner
	}
	return record
}
