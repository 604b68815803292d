package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRiotID = errors.New("invalid riot id")

// Defaults for the derived display fields. Creation and refresh always
// write all four together.
const (
	DefaultRank     = "Unranked"
	DefaultLP       = "0 LP"
	DefaultWinRate  = "0%"
	DefaultImageSrc = "Unranked.webp"
)

type Account struct {
	ID       int64  `db:"id" json:"id"`
	Login    string `db:"login" json:"login"`
	RiotID   string `db:"riot_id" json:"riotId"`
	Region   string `db:"region" json:"region"`
	Password string `db:"password" json:"password"` // ciphertext, never plaintext
	Rank     string `db:"rank" json:"rank"`
	LP       string `db:"lp" json:"lp"`
	WinRate  string `db:"win_rate" json:"winRate"`
	ImageSrc string `db:"image_src" json:"imageSrc"`
}

type CreateAccountParams struct {
	Login    string
	RiotID   string
	Region   string
	Password string
	Rank     string
	LP       string
	WinRate  string
	ImageSrc string
}

const minTagLength = 3

// SplitRiotID splits a "name#tag" identifier. The tag must be at least
// three characters and must not itself contain '#'.
func SplitRiotID(riotID string) (name, tag string, err error) {
	name, tag, ok := strings.Cut(riotID, "#")
	if !ok || name == "" {
		return "", "", fmt.Errorf("%w: %q is not of the form name#tag", ErrInvalidRiotID, riotID)
	}
	if len(tag) < minTagLength {
		return "", "", fmt.Errorf("%w: tag %q is shorter than %d characters", ErrInvalidRiotID, tag, minTagLength)
	}
	if strings.Contains(tag, "#") {
		return "", "", fmt.Errorf("%w: tag %q contains '#'", ErrInvalidRiotID, tag)
	}
	return name, tag, nil
}
