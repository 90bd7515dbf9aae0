// Package steam talks to the Steam appdetails API. The Proxy exposes it
// behind a same-origin endpoint; the Fetcher consumes that endpoint and
// normalizes the response into GameDetails, caching successes for a short
// TTL.
package steam

import "encoding/json"

// GameDetails is the normalized enrichment record for one app. Optional
// arrays are always non-nil and missing strings are empty, so handlers can
// render it without nil checks.
type GameDetails struct {
	AppID              int64        `json:"app_id"`
	Name               string       `json:"name"`
	Type               string       `json:"type"`
	ShortDescription   string       `json:"short_description"`
	HeaderImage        string       `json:"header_image"`
	Website            string       `json:"website,omitempty"`
	Developers         []string     `json:"developers"`
	Publishers         []string     `json:"publishers"`
	Platforms          Platforms    `json:"platforms"`
	Categories         []Category   `json:"categories"`
	Genres             []Genre      `json:"genres"`
	Screenshots        []Screenshot `json:"screenshots"`
	ReleaseDate        ReleaseDate  `json:"release_date"`
	SupportedLanguages string       `json:"supported_languages"`
	AboutTheGame       string       `json:"about_the_game"`
	PCRequirements     Requirements `json:"pc_requirements"`
	Metacritic         *Metacritic  `json:"metacritic,omitempty"`
}

type Platforms struct {
	Windows bool `json:"windows"`
	Mac     bool `json:"mac"`
	Linux   bool `json:"linux"`
}

type Category struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type Genre struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type Screenshot struct {
	ID            int    `json:"id"`
	PathThumbnail string `json:"path_thumbnail"`
	PathFull      string `json:"path_full"`
}

type ReleaseDate struct {
	ComingSoon bool   `json:"coming_soon"`
	Date       string `json:"date"`
}

// Requirements holds Steam's free-text requirement blocks, still as HTML.
// Use ParseRequirements to break a block into labeled fields.
type Requirements struct {
	Minimum     string `json:"minimum,omitempty"`
	Recommended string `json:"recommended,omitempty"`
}

type Metacritic struct {
	Score int    `json:"score"`
	URL   string `json:"url"`
}

// appEntry is the {success, data} envelope the appdetails API wraps every
// record in, keyed by app ID.
type appEntry struct {
	Success bool        `json:"success"`
	Data    *rawDetails `json:"data"`
}

// rawDetails mirrors the wire shape. pc_requirements is a RawMessage
// because Steam sends an empty JSON array instead of an object when a game
// has no requirements listed.
type rawDetails struct {
	Name               string          `json:"name"`
	Type               string          `json:"type"`
	ShortDescription   string          `json:"short_description"`
	HeaderImage        string          `json:"header_image"`
	Website            string          `json:"website"`
	Developers         []string        `json:"developers"`
	Publishers         []string        `json:"publishers"`
	Platforms          Platforms       `json:"platforms"`
	Categories         []Category      `json:"categories"`
	Genres             []Genre         `json:"genres"`
	Screenshots        []Screenshot    `json:"screenshots"`
	ReleaseDate        ReleaseDate     `json:"release_date"`
	SupportedLanguages string          `json:"supported_languages"`
	AboutTheGame       string          `json:"about_the_game"`
	PCRequirements     json.RawMessage `json:"pc_requirements"`
	Metacritic         *Metacritic     `json:"metacritic"`
}

func normalize(appID int64, raw *rawDetails) GameDetails {
	d := GameDetails{
		AppID:              appID,
		Name:               raw.Name,
		Type:               raw.Type,
		ShortDescription:   raw.ShortDescription,
		HeaderImage:        raw.HeaderImage,
		Website:            raw.Website,
		Developers:         raw.Developers,
		Publishers:         raw.Publishers,
		Platforms:          raw.Platforms,
		Categories:         raw.Categories,
		Genres:             raw.Genres,
		Screenshots:        raw.Screenshots,
		ReleaseDate:        raw.ReleaseDate,
		SupportedLanguages: raw.SupportedLanguages,
		AboutTheGame:       raw.AboutTheGame,
		PCRequirements:     normalizeRequirements(raw.PCRequirements),
		Metacritic:         raw.Metacritic,
	}

	if d.Developers == nil {
		d.Developers = []string{}
	}
	if d.Publishers == nil {
		d.Publishers = []string{}
	}
	if d.Categories == nil {
		d.Categories = []Category{}
	}
	if d.Genres == nil {
		d.Genres = []Genre{}
	}
	if d.Screenshots == nil {
		d.Screenshots = []Screenshot{}
	}
	return d
}

func normalizeRequirements(raw json.RawMessage) Requirements {
	var req Requirements
	if len(raw) == 0 {
		return req
	}
	// An unmarshal failure here means the "empty array" variant; treat it
	// the same as absent.
	_ = json.Unmarshal(raw, &req)
	return req
}
