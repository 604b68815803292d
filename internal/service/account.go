package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"gitlab.tepseg.com/ai/lol-accounts/internal/config"
	"gitlab.tepseg.com/ai/lol-accounts/internal/model"
	"gitlab.tepseg.com/ai/lol-accounts/internal/repository"
	"gitlab.tepseg.com/ai/lol-accounts/internal/riot"
)

// StatsClient is the outbound surface of the ranked-stats provider.
type StatsClient interface {
	ResolveIdentity(ctx context.Context, name, tag, region string) (*riot.Identity, error)
	RankedEntries(ctx context.Context, summonerID, region string) ([]riot.LeagueEntry, error)
}

// CredentialCipher seals a credential for storage and unseals it for
// display. Decrypt degrades to an empty string instead of failing.
type CredentialCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) string
}

type CreateParams struct {
	Login    string
	RiotID   string
	Region   string
	Password string
}

type AccountService struct {
	repo   repository.AccountRepository
	stats  StatsClient
	cipher CredentialCipher
}

func NewAccountService(repo repository.AccountRepository, stats StatsClient, cipher CredentialCipher) *AccountService {
	return &AccountService{repo: repo, stats: stats, cipher: cipher}
}

func (s *AccountService) List(ctx context.Context) ([]model.Account, error) {
	return s.repo.FindAll(ctx)
}

func (s *AccountService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Password returns the transiently decrypted credential for display. An
// undecryptable stored value yields an empty string, not an error.
func (s *AccountService) Password(ctx context.Context, id int64) (string, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.cipher.Decrypt(account.Password), nil
}

// Create resolves the riot id against the stats provider, derives the
// display fields and inserts the row. Any failure aborts the whole
// operation; no partial row is written.
func (s *AccountService) Create(ctx context.Context, params CreateParams) (*model.Account, error) {
	name, tag, err := model.SplitRiotID(params.RiotID)
	if err != nil {
		return nil, err
	}

	summary, err := s.lookupSummary(ctx, name, tag, params.Region)
	if err != nil {
		return nil, err
	}

	encrypted, err := s.cipher.Encrypt(params.Password)
	if err != nil {
		return nil, fmt.Errorf("encrypt password: %w", err)
	}

	account, err := s.repo.Create(ctx, model.CreateAccountParams{
		Login:    params.Login,
		RiotID:   params.RiotID,
		Region:   params.Region,
		Password: encrypted,
		Rank:     summary.Rank,
		LP:       summary.LP,
		WinRate:  summary.WinRate,
		ImageSrc: summary.ImageSrc,
	})
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}

	log.Info().
		Int64("accountId", account.ID).
		Str("riotId", account.RiotID).
		Str("region", account.Region).
		Str("rank", account.Rank).
		Msg("account created")

	return account, nil
}

// RefreshAll re-fetches ranked stats for every stored account. Accounts
// are processed concurrently and independently: a failed lookup leaves
// that account's row untouched and its original value in the result.
// The returned slice always matches the stored set in order and length.
func (s *AccountService) RefreshAll(ctx context.Context) ([]model.Account, error) {
	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	results := make([]model.Account, len(accounts))
	copy(results, accounts)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.RefreshConcurrency)

	for i := range accounts {
		i := i
		g.Go(func() error {
			updated, err := s.refreshOne(ctx, &accounts[i])
			if err != nil {
				log.Error().Err(err).
					Int64("accountId", accounts[i].ID).
					Str("riotId", accounts[i].RiotID).
					Msg("failed to refresh account, keeping previous stats")
				return nil
			}
			results[i] = *updated
			return nil
		})
	}
	// Per-account errors never reach the group, so Wait only synchronizes.
	_ = g.Wait()

	return results, nil
}

func (s *AccountService) refreshOne(ctx context.Context, account *model.Account) (*model.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, config.AccountRefreshTimeout)
	defer cancel()

	name, tag, err := model.SplitRiotID(account.RiotID)
	if err != nil {
		return nil, err
	}

	summary, err := s.lookupSummary(ctx, name, tag, account.Region)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateRankedStats(ctx, account.ID,
		summary.Rank, summary.LP, summary.WinRate, summary.ImageSrc)
	if err != nil {
		return nil, fmt.Errorf("persist ranked stats: %w", err)
	}

	log.Debug().
		Int64("accountId", updated.ID).
		Str("rank", updated.Rank).
		Str("lp", updated.LP).
		Msg("account refreshed")

	return updated, nil
}

func (s *AccountService) lookupSummary(ctx context.Context, name, tag, region string) (*RankSummary, error) {
	identity, err := s.stats.ResolveIdentity(ctx, name, tag, region)
	if err != nil {
		return nil, err
	}

	entries, err := s.stats.RankedEntries(ctx, identity.SummonerID, region)
	if err != nil {
		return nil, err
	}

	summary := SummarizeRank(entries)
	return &summary, nil
}
