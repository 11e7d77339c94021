package history

import (
	"crypto/ed25519"
	"encoding/json"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var ErrMalformed = errors.New("malformed raffle history")

// LocalRaffle is the cached view of a raffle whose prize has been handled.
// Once written, an entry is never refreshed from chain.
type LocalRaffle struct {
	Id         uint64  `json:"id"`
	Version    uint8   `json:"version"`
	Bump       uint8   `json:"bump"`
	Active     bool    `json:"active"`
	NumTickets uint32  `json:"numTickets"`
	StartTime  int64   `json:"startTime"`
	EndTime    int64   `json:"endTime"`
	PrizeNft   *string `json:"prizeNft"`
	Winner     *string `json:"winner"`
	Claimed    bool    `json:"claimed"`
}

func (r *LocalRaffle) Validate() error {
	if r == nil {
		return errors.New("raffle is nil")
	}
	if r.Id == 0 {
		return errors.New("raffle id is required")
	}
	if err := validateOptionalKey(r.PrizeNft); err != nil {
		return errors.Wrap(err, "invalid prize nft")
	}
	if err := validateOptionalKey(r.Winner); err != nil {
		return errors.Wrap(err, "invalid winner")
	}
	return nil
}

func (r *LocalRaffle) Clone() LocalRaffle {
	return LocalRaffle{
		Id:         r.Id,
		Version:    r.Version,
		Bump:       r.Bump,
		Active:     r.Active,
		NumTickets: r.NumTickets,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		PrizeNft:   cloneString(r.PrizeNft),
		Winner:     cloneString(r.Winner),
		Claimed:    r.Claimed,
	}
}

// rawLocalRaffle detects missing fields, which a plain decode would silently
// zero.
type rawLocalRaffle struct {
	Id         *uint64 `json:"id"`
	Version    *uint8  `json:"version"`
	Bump       *uint8  `json:"bump"`
	Active     *bool   `json:"active"`
	NumTickets *uint32 `json:"numTickets"`
	StartTime  *int64  `json:"startTime"`
	EndTime    *int64  `json:"endTime"`
	PrizeNft   *string `json:"prizeNft"`
	Winner     *string `json:"winner"`
	Claimed    *bool   `json:"claimed"`
}

// MarshalList serializes records into the JSON array stored by key-value
// backends.
func MarshalList(records []*LocalRaffle) ([]byte, error) {
	if records == nil {
		records = []*LocalRaffle{}
	}
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return nil, err
		}
	}
	return json.Marshal(records)
}

// UnmarshalList parses a JSON array of records. Any invalid entry rejects the
// whole list with ErrMalformed.
func UnmarshalList(data []byte) ([]*LocalRaffle, error) {
	var raw []*rawLocalRaffle
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrMalformed
	}
	if raw == nil {
		return nil, ErrMalformed
	}

	records := make([]*LocalRaffle, len(raw))
	for i, r := range raw {
		if r == nil ||
			r.Id == nil ||
			r.Version == nil ||
			r.Bump == nil ||
			r.Active == nil ||
			r.NumTickets == nil ||
			r.StartTime == nil ||
			r.EndTime == nil ||
			r.Claimed == nil {
			return nil, ErrMalformed
		}

		record := &LocalRaffle{
			Id:         *r.Id,
			Version:    *r.Version,
			Bump:       *r.Bump,
			Active:     *r.Active,
			NumTickets: *r.NumTickets,
			StartTime:  *r.StartTime,
			EndTime:    *r.EndTime,
			PrizeNft:   r.PrizeNft,
			Winner:     r.Winner,
			Claimed:    *r.Claimed,
		}
		if err := record.Validate(); err != nil {
			return nil, ErrMalformed
		}
		records[i] = record
	}
	return records, nil
}

// Find returns the first record with the given id.
func Find(records []*LocalRaffle, id uint64) (*LocalRaffle, bool) {
	for _, record := range records {
		if record.Id == id {
			return record, true
		}
	}
	return nil, false
}

func validateOptionalKey(value *string) error {
	if value == nil {
		return nil
	}
	decoded, err := base58.Decode(*value)
	if err != nil {
		return err
	}
	if len(decoded) != ed25519.PublicKeySize {
		return errors.Errorf("invalid key length: %d", len(decoded))
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	cloned := *s
	return &cloned
}
