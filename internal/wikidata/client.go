package wikidata

// Package wikidata is the sole boundary to the external knowledge base.
// Resolve turns a normalized name into a classified Person through two
// sequential calls: a ranked entity search, then one entity-data fetch per
// candidate until a human is found. The client performs no retries and no
// caching — every submission re-queries.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lndk/hundred-names/internal/constants"
	"github.com/lndk/hundred-names/internal/game"
)

var (
	// ErrRateLimited is surfaced on HTTP 429 from either endpoint. The
	// caller may resubmit; the client itself never retries.
	ErrRateLimited = errors.New("knowledge base rate limit exceeded")
	// ErrTimeout is surfaced when the bounded resolution window expires.
	ErrTimeout = errors.New("knowledge base request timed out")
	// ErrNoHumanEntity means no searched candidate is an instance of human.
	ErrNoHumanEntity = errors.New("no matching human entity found")
	// ErrInvalidEntity means the entity is human but its gender claim is
	// absent or maps to no recognized category.
	ErrInvalidEntity = errors.New("entity has no recognized gender identity")
)

// DefaultTimeout bounds a full resolution (search plus detail fetches).
const DefaultTimeout = 10 * time.Second

// DefaultSearchLimit is the size of the ranked candidate set.
const DefaultSearchLimit = 10

// Client queries the Wikidata search and entity-data endpoints.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	searchLimit int
	genders     map[string]game.Gender
}

// NewClient builds a resolver client. Zero-value arguments fall back to the
// package defaults; genderOverrides extends the claim-code table from
// configuration.
func NewClient(baseURL string, searchLimit int, timeout time.Duration, genderOverrides map[string]string) *Client {
	if baseURL == "" {
		baseURL = constants.WikidataBaseURL
	}
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		searchLimit: searchLimit,
		genders:     genderTable(genderOverrides),
	}
}

type searchResult struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// claim models the fragment of a Wikidata statement the resolver reads.
// Entity-valued claims (P31, P21) carry an object with an "id"; the image
// claim (P18) carries a bare file name string.
type claim struct {
	Mainsnak struct {
		Datavalue struct {
			Value json.RawMessage `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}

type entityData struct {
	Claims map[string][]claim `json:"claims"`
}

// Resolve looks up a normalized name and returns the first ranked candidate
// that is an instance of human, classified by its gender claim.
func (c *Client) Resolve(ctx context.Context, normalizedName string) (game.Person, error) {
	candidates, err := c.search(ctx, normalizedName)
	if err != nil {
		return game.Person{}, err
	}

	for _, cand := range candidates {
		ent, err := c.fetchEntity(ctx, cand.ID)
		if err != nil {
			return game.Person{}, err
		}
		if !hasClaimValue(ent, constants.WikidataPropInstanceOf, constants.WikidataHumanID) {
			continue
		}

		genderClaim, _ := firstEntityValue(ent, constants.WikidataPropGender)
		gender, known := c.genders[genderClaim]
		if !known || gender == game.GenderUnspecified {
			return game.Person{}, fmt.Errorf("%w: %s", ErrInvalidEntity, cand.Label)
		}

		p := game.Person{
			WikidataID: cand.ID,
			Name:       cand.Label,
			Gender:     gender,
			ProfileURL: constants.WikidataProfileBaseURL + cand.ID,
		}
		if file, ok := firstStringValue(ent, constants.WikidataPropImage); ok {
			p.ImageURL = constants.CommonsFilePathURL + url.PathEscape(file)
		}
		return p, nil
	}

	return game.Person{}, fmt.Errorf("%w: %s", ErrNoHumanEntity, normalizedName)
}

// search queries wbsearchentities and returns the ranked candidate set.
func (c *Client) search(ctx context.Context, name string) ([]searchResult, error) {
	q := url.Values{}
	q.Set("action", "wbsearchentities")
	q.Set("search", name)
	q.Set("language", "en")
	q.Set("limit", fmt.Sprintf("%d", c.searchLimit))
	q.Set("format", "json")

	var out struct {
		Search []searchResult `json:"search"`
	}
	if err := c.getJSON(ctx, c.baseURL+constants.WikidataSearchPath+"?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	if len(out.Search) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoHumanEntity, name)
	}
	return out.Search, nil
}

// fetchEntity retrieves the full entity record for one candidate.
func (c *Client) fetchEntity(ctx context.Context, id string) (*entityData, error) {
	var out struct {
		Entities map[string]entityData `json:"entities"`
	}
	if err := c.getJSON(ctx, c.baseURL+constants.WikidataEntityDataPath+id+".json", &out); err != nil {
		return nil, err
	}
	ent, ok := out.Entities[id]
	if !ok {
		return nil, fmt.Errorf("entity %s missing from entity-data response", id)
	}
	return &ent, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set(constants.HeaderUserAgent, constants.ResolverUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("knowledge base request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("knowledge base returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode knowledge base response: %w", err)
	}
	return nil
}

// firstEntityValue extracts the entity id from the first statement of an
// entity-valued property such as P21.
func firstEntityValue(ent *entityData, prop string) (string, bool) {
	for _, cl := range ent.Claims[prop] {
		var v struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(cl.Mainsnak.Datavalue.Value, &v); err == nil && v.ID != "" {
			return v.ID, true
		}
	}
	return "", false
}

// firstStringValue extracts the first string-valued statement of a
// property such as P18 (image file name).
func firstStringValue(ent *entityData, prop string) (string, bool) {
	for _, cl := range ent.Claims[prop] {
		var s string
		if err := json.Unmarshal(cl.Mainsnak.Datavalue.Value, &s); err == nil && s != "" {
			return s, true
		}
	}
	return "", false
}

// hasClaimValue reports whether any statement of an entity-valued property
// carries the given entity id (e.g. P31 containing Q5).
func hasClaimValue(ent *entityData, prop, id string) bool {
	for _, cl := range ent.Claims[prop] {
		var v struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(cl.Mainsnak.Datavalue.Value, &v); err == nil && v.ID == id {
			return true
		}
	}
	return false
}
