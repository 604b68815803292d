package riot

// QueueSolo is the queue-type tag of the primary 5v5 ranked ladder.
const QueueSolo = "RANKED_SOLO_5x5"

// RiotAccount is the account-v1 response for a riot id lookup.
type RiotAccount struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner is the platform-local summoner-v4 record.
type Summoner struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int    `json:"summonerLevel"`
}

// Identity ties the universal player id to the platform-local summoner id
// needed by the league endpoints.
type Identity struct {
	SummonerID string `json:"summonerId"`
	PUUID      string `json:"puuid"`
}

// LeagueEntry is one ranked-queue record from league-v4.
type LeagueEntry struct {
	LeagueID     string `json:"leagueId"`
	SummonerID   string `json:"summonerId"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
	Veteran      bool   `json:"veteran"`
	Inactive     bool   `json:"inactive"`
}
