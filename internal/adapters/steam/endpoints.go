package steam

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"demovault/internal/core/sharecode"
	perr "demovault/internal/platform/errors"
)

// noMoreSentinel is the remote service's "caught up" marker
const noMoreSentinel = "n/a"

// NextCode asks for the share code following knownCode for the account
// behind creds. ok is false when the remote signals no newer match exists;
// that is routine, not an error. Auth failures surface as unauthorized
func (c *Client) NextCode(ctx context.Context, creds Credentials, knownCode string) (next string, ok bool, err error) {
	q := url.Values{}
	q.Set("steamid", creds.SteamID)
	q.Set("steamidkey", creds.AuthCode)
	q.Set("knowncode", knownCode)

	resp, err := c.get(ctx, "/ICSGOPlayers_730/GetNextMatchSharingCode/v1", q)
	if err != nil {
		return "", false, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("steam close body failed")
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusAccepted:
		// the remote answers 202 while it has not indexed past knownCode yet
		return "", false, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", false, perr.Unauthorizedf("steam rejected account credentials")
	case http.StatusPreconditionFailed:
		return "", false, perr.Newf(perr.ErrorCodeInvalidArgument, "steam rejected known code")
	case http.StatusTooManyRequests:
		return "", false, perr.Newf(perr.ErrorCodeTooManyRequests, "steam rate limited")
	default:
		return "", false, perr.Unavailablef("steam next code unexpected status %d", resp.StatusCode)
	}

	var env nextCodeEnvelope
	if err := decodeBody(resp.Body, &env); err != nil {
		return "", false, err
	}
	if env.Result.NextCode == "" || env.Result.NextCode == noMoreSentinel {
		return "", false, nil
	}
	return env.Result.NextCode, true, nil
}

// MatchDetails fetches the match document for a decoded identifier
// ok is false when the remote has already garbage-collected the replay
// (they expire roughly two weeks after the match); that outcome is expected
// and distinct from a transport failure
func (c *Client) MatchDetails(ctx context.Context, id sharecode.Identifier) (MatchInfo, bool, error) {
	q := url.Values{}
	q.Set("matchid", strconv.FormatUint(id.MatchID, 10))
	q.Set("outcomeid", strconv.FormatUint(id.OutcomeID, 10))
	q.Set("token", strconv.FormatUint(uint64(id.TokenID), 10))

	resp, err := c.get(ctx, "/ICSGOPlayers_730/GetMatchInfo/v1", q)
	if err != nil {
		return MatchInfo{}, false, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("steam close body failed")
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return MatchInfo{}, false, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return MatchInfo{}, false, perr.Unauthorizedf("steam rejected api key")
	case http.StatusTooManyRequests:
		return MatchInfo{}, false, perr.Newf(perr.ErrorCodeTooManyRequests, "steam rate limited")
	default:
		return MatchInfo{}, false, perr.Unavailablef("steam match info unexpected status %d", resp.StatusCode)
	}

	var env matchInfoEnvelope
	if err := decodeBody(resp.Body, &env); err != nil {
		return MatchInfo{}, false, err
	}
	return env.Result, true, nil
}

func decodeBody(r io.Reader, out any) error {
	b, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "steam read body failed")
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "steam decode body failed")
	}
	return nil
}
