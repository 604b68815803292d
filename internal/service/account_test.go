package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.tepseg.com/ai/lol-accounts/internal/model"
	"gitlab.tepseg.com/ai/lol-accounts/internal/repository"
	"gitlab.tepseg.com/ai/lol-accounts/internal/riot"
)

type mockAccountRepo struct {
	mu         sync.Mutex
	accounts   []model.Account
	nextID     int64
	failUpdate bool
}

func newMockAccountRepo(accounts ...model.Account) *mockAccountRepo {
	repo := &mockAccountRepo{accounts: accounts, nextID: 1}
	for _, a := range accounts {
		if a.ID >= repo.nextID {
			repo.nextID = a.ID + 1
		}
	}
	return repo
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id int64) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.accounts {
		if m.accounts[i].ID == id {
			a := m.accounts[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockAccountRepo) FindAll(ctx context.Context) ([]model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Account, len(m.accounts))
	copy(out, m.accounts)
	return out, nil
}

func (m *mockAccountRepo) Create(ctx context.Context, params model.CreateAccountParams) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account := model.Account{
		ID:       m.nextID,
		Login:    params.Login,
		RiotID:   params.RiotID,
		Region:   params.Region,
		Password: params.Password,
		Rank:     params.Rank,
		LP:       params.LP,
		WinRate:  params.WinRate,
		ImageSrc: params.ImageSrc,
	}
	m.nextID++
	m.accounts = append(m.accounts, account)
	return &account, nil
}

func (m *mockAccountRepo) UpdateRankedStats(ctx context.Context, id int64, rank, lp, winRate, imageSrc string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate {
		return nil, errors.New("write failed")
	}
	for i := range m.accounts {
		if m.accounts[i].ID == id {
			m.accounts[i].Rank = rank
			m.accounts[i].LP = lp
			m.accounts[i].WinRate = winRate
			m.accounts[i].ImageSrc = imageSrc
			a := m.accounts[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockAccountRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.accounts {
		if m.accounts[i].ID == id {
			m.accounts = append(m.accounts[:i], m.accounts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockAccountRepo) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts), nil
}

func (m *mockAccountRepo) WithTx(tx *sqlx.Tx) repository.AccountRepository {
	return m
}

// mockStatsClient fails lookups for names listed in failNames and serves
// a fixed entry set for everyone else.
type mockStatsClient struct {
	mu        sync.Mutex
	failNames map[string]bool
	entries   []riot.LeagueEntry
	calls     int
}

func (m *mockStatsClient) ResolveIdentity(ctx context.Context, name, tag, region string) (*riot.Identity, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if _, err := riotPlatform(region); err != nil {
		return nil, err
	}
	if m.failNames[name] {
		return nil, riot.ErrLookupFailed
	}
	return &riot.Identity{SummonerID: "summoner-" + name, PUUID: "puuid-" + name}, nil
}

func (m *mockStatsClient) RankedEntries(ctx context.Context, summonerID, region string) ([]riot.LeagueEntry, error) {
	return m.entries, nil
}

func riotPlatform(region string) (string, error) {
	for _, r := range riot.Regions() {
		if r == region {
			return r, nil
		}
	}
	return "", riot.ErrUnknownRegion
}

type mockCipher struct {
	fail bool
}

func (m *mockCipher) Encrypt(plaintext string) (string, error) {
	if m.fail {
		return "", errors.New("no key")
	}
	return "enc(" + plaintext + ")", nil
}

func (m *mockCipher) Decrypt(ciphertext string) string {
	if strings.HasPrefix(ciphertext, "enc(") && strings.HasSuffix(ciphertext, ")") {
		return strings.TrimSuffix(strings.TrimPrefix(ciphertext, "enc("), ")")
	}
	return ""
}

func testAccount(id int64, name string) model.Account {
	return model.Account{
		ID:       id,
		Login:    "login-" + name,
		RiotID:   name + "#NA1",
		Region:   "NA",
		Password: "enc(secret)",
		Rank:     model.DefaultRank,
		LP:       model.DefaultLP,
		WinRate:  model.DefaultWinRate,
		ImageSrc: model.DefaultImageSrc,
	}
}

var soloEntries = []riot.LeagueEntry{
	{QueueType: riot.QueueSolo, Tier: "GOLD", Rank: "II", LeaguePoints: 42, Wins: 30, Losses: 20},
}

func TestAccountService_RefreshAll(t *testing.T) {
	ctx := context.Background()

	t.Run("updates every account", func(t *testing.T) {
		repo := newMockAccountRepo(testAccount(1, "alpha"), testAccount(2, "beta"))
		stats := &mockStatsClient{entries: soloEntries}
		svc := NewAccountService(repo, stats, &mockCipher{})

		result, err := svc.RefreshAll(ctx)
		require.NoError(t, err)
		require.Len(t, result, 2)

		for _, a := range result {
			assert.Equal(t, "GOLD II", a.Rank)
			assert.Equal(t, "42 LP", a.LP)
			assert.Equal(t, "60%", a.WinRate)
			assert.Equal(t, "/assets/ranks/Gold.webp", a.ImageSrc)
		}
	})

	t.Run("isolates a failing account", func(t *testing.T) {
		repo := newMockAccountRepo(
			testAccount(1, "alpha"),
			testAccount(2, "broken"),
			testAccount(3, "gamma"),
		)
		stats := &mockStatsClient{
			entries:   soloEntries,
			failNames: map[string]bool{"broken": true},
		}
		svc := NewAccountService(repo, stats, &mockCipher{})

		result, err := svc.RefreshAll(ctx)
		require.NoError(t, err)
		require.Len(t, result, 3)

		// Order matches the stored order.
		assert.Equal(t, int64(1), result[0].ID)
		assert.Equal(t, int64(2), result[1].ID)
		assert.Equal(t, int64(3), result[2].ID)

		// The failing account keeps its pre-call snapshot.
		assert.Equal(t, testAccount(2, "broken"), result[1])

		// Its stored row is untouched too.
		stored, err := repo.FindByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultRank, stored.Rank)

		// The others were refreshed and persisted.
		assert.Equal(t, "GOLD II", result[0].Rank)
		assert.Equal(t, "GOLD II", result[2].Rank)
		stored, err = repo.FindByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "GOLD II", stored.Rank)
	})

	t.Run("persistence failure keeps original account", func(t *testing.T) {
		repo := newMockAccountRepo(testAccount(1, "alpha"))
		repo.failUpdate = true
		stats := &mockStatsClient{entries: soloEntries}
		svc := NewAccountService(repo, stats, &mockCipher{})

		result, err := svc.RefreshAll(ctx)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, testAccount(1, "alpha"), result[0])
	})

	t.Run("malformed riot id keeps original account", func(t *testing.T) {
		bad := testAccount(1, "alpha")
		bad.RiotID = "no-tag-here"
		repo := newMockAccountRepo(bad)
		stats := &mockStatsClient{entries: soloEntries}
		svc := NewAccountService(repo, stats, &mockCipher{})

		result, err := svc.RefreshAll(ctx)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, bad, result[0])
		assert.Equal(t, 0, stats.calls)
	})

	t.Run("empty store refreshes to empty set", func(t *testing.T) {
		repo := newMockAccountRepo()
		svc := NewAccountService(repo, &mockStatsClient{}, &mockCipher{})

		result, err := svc.RefreshAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestAccountService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account with derived fields and encrypted password", func(t *testing.T) {
		repo := newMockAccountRepo()
		stats := &mockStatsClient{entries: soloEntries}
		svc := NewAccountService(repo, stats, &mockCipher{})

		account, err := svc.Create(ctx, CreateParams{
			Login:    "smurf",
			RiotID:   "Faker#KR1",
			Region:   "KR",
			Password: "hunter2",
		})
		require.NoError(t, err)

		assert.Equal(t, "smurf", account.Login)
		assert.Equal(t, "enc(hunter2)", account.Password)
		assert.Equal(t, "GOLD II", account.Rank)
		assert.Equal(t, "42 LP", account.LP)
		assert.Equal(t, "60%", account.WinRate)
		assert.Equal(t, "/assets/ranks/Gold.webp", account.ImageSrc)

		count, _ := repo.Count(ctx)
		assert.Equal(t, 1, count)
	})

	t.Run("lookup failure writes nothing", func(t *testing.T) {
		repo := newMockAccountRepo()
		stats := &mockStatsClient{failNames: map[string]bool{"Faker": true}}
		svc := NewAccountService(repo, stats, &mockCipher{})

		_, err := svc.Create(ctx, CreateParams{
			Login: "smurf", RiotID: "Faker#KR1", Region: "KR", Password: "hunter2",
		})
		require.ErrorIs(t, err, riot.ErrLookupFailed)

		count, _ := repo.Count(ctx)
		assert.Equal(t, 0, count)
	})

	t.Run("unknown region fails before lookup", func(t *testing.T) {
		repo := newMockAccountRepo()
		stats := &mockStatsClient{entries: soloEntries}
		svc := NewAccountService(repo, stats, &mockCipher{})

		_, err := svc.Create(ctx, CreateParams{
			Login: "smurf", RiotID: "Faker#KR1", Region: "XX", Password: "hunter2",
		})
		require.ErrorIs(t, err, riot.ErrUnknownRegion)

		count, _ := repo.Count(ctx)
		assert.Equal(t, 0, count)
	})

	t.Run("malformed riot id is rejected", func(t *testing.T) {
		repo := newMockAccountRepo()
		svc := NewAccountService(repo, &mockStatsClient{}, &mockCipher{})

		_, err := svc.Create(ctx, CreateParams{
			Login: "smurf", RiotID: "FakerKR1", Region: "KR", Password: "hunter2",
		})
		require.Error(t, err)
	})

	t.Run("encryption failure writes nothing", func(t *testing.T) {
		repo := newMockAccountRepo()
		stats := &mockStatsClient{entries: soloEntries}
		svc := NewAccountService(repo, stats, &mockCipher{fail: true})

		_, err := svc.Create(ctx, CreateParams{
			Login: "smurf", RiotID: "Faker#KR1", Region: "KR", Password: "hunter2",
		})
		require.Error(t, err)

		count, _ := repo.Count(ctx)
		assert.Equal(t, 0, count)
	})
}

func TestAccountService_Password(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the decrypted credential", func(t *testing.T) {
		repo := newMockAccountRepo(testAccount(1, "alpha"))
		svc := NewAccountService(repo, &mockStatsClient{}, &mockCipher{})

		password, err := svc.Password(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "secret", password)
	})

	t.Run("undecryptable value degrades to empty string", func(t *testing.T) {
		account := testAccount(1, "alpha")
		account.Password = "not-a-ciphertext"
		repo := newMockAccountRepo(account)
		svc := NewAccountService(repo, &mockStatsClient{}, &mockCipher{})

		password, err := svc.Password(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "", password)
	})

	t.Run("missing account", func(t *testing.T) {
		repo := newMockAccountRepo()
		svc := NewAccountService(repo, &mockStatsClient{}, &mockCipher{})

		_, err := svc.Password(ctx, 42)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}
