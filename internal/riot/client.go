package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"gitlab.tepseg.com/ai/lol-accounts/internal/cache"
	"gitlab.tepseg.com/ai/lol-accounts/internal/config"
)

// ErrLookupFailed covers any transport failure or non-success response
// from the stats provider. No partial identity is ever returned.
var ErrLookupFailed = errors.New("stats lookup failed")

const defaultAccountURL = "https://americas.api.riotgames.com"

// Client wraps the ranked-stats provider: a global account lookup followed
// by platform-scoped summoner and league lookups.
type Client struct {
	apiKey string
	http   *http.Client
	cache  *cache.Cache

	// accountURL is the global routing host for account-v1; platformURL
	// is a format string taking the platform code. Overridable in tests.
	accountURL  string
	platformURL string
}

func NewClient(apiKey string, c *cache.Cache) *Client {
	return &Client{
		apiKey:      apiKey,
		cache:       c,
		http:        &http.Client{Timeout: config.RiotCallTimeout},
		accountURL:  defaultAccountURL,
		platformURL: "https://%s.api.riotgames.com",
	}
}

func (c *Client) get(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s: %s", ErrLookupFailed, resp.Status, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrLookupFailed, err)
	}
	return nil
}

// ResolveIdentity maps a riot id to the platform-local summoner identity:
// account-v1 by riot id on the global routing host, then summoner-v4 by
// puuid on the region's platform host.
func (c *Client) ResolveIdentity(ctx context.Context, name, tag, region string) (*Identity, error) {
	platform, err := platformFor(region)
	if err != nil {
		return nil, err
	}

	cacheKey := cache.Key("identity", platform, name, tag)
	var cached Identity
	if c.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var account RiotAccount
	accountURL := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.accountURL, url.PathEscape(name), url.PathEscape(tag))
	if err := c.get(ctx, accountURL, &account); err != nil {
		return nil, fmt.Errorf("resolve account %s#%s: %w", name, tag, err)
	}

	var summoner Summoner
	summonerURL := fmt.Sprintf(c.platformURL+"/lol/summoner/v4/summoners/by-puuid/%s",
		platform, url.PathEscape(account.PUUID))
	if err := c.get(ctx, summonerURL, &summoner); err != nil {
		return nil, fmt.Errorf("resolve summoner for %s#%s: %w", name, tag, err)
	}

	identity := &Identity{SummonerID: summoner.ID, PUUID: account.PUUID}
	c.cache.Set(ctx, cacheKey, identity, config.IdentityCacheTTL)

	log.Debug().Str("name", name).Str("tag", tag).Str("platform", platform).
		Msg("resolved identity")

	return identity, nil
}

// RankedEntries fetches all ranked-queue entries for a summoner. The
// result may be empty when the account is unranked in every queue.
func (c *Client) RankedEntries(ctx context.Context, summonerID, region string) ([]LeagueEntry, error) {
	platform, err := platformFor(region)
	if err != nil {
		return nil, err
	}

	var entries []LeagueEntry
	entriesURL := fmt.Sprintf(c.platformURL+"/lol/league/v4/entries/by-summoner/%s",
		platform, url.PathEscape(summonerID))
	if err := c.get(ctx, entriesURL, &entries); err != nil {
		return nil, fmt.Errorf("fetch ranked entries: %w", err)
	}
	return entries, nil
}
