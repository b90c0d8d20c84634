package calil

import (
	"context"
	"encoding/xml"
	"net/url"
	"strconv"
	"strings"

	"bookfinder/internal/platform/upstream"
)

// Library is one record of the Calil library list.
type Library struct {
	Name       string
	SystemID   string
	SystemName string
	LibKey     string
	Category   string
	URL        string
	Address    string
	Prefecture string
	City       string
	Postcode   string
	Tel        string
	Lat        float64
	Lng        float64
}

type libraryFeed struct {
	XMLName xml.Name        `xml:"Libraries"`
	Items   []libraryRecord `xml:"Library"`
}

type libraryRecord struct {
	Formal     *string `xml:"formal"`
	SystemID   *string `xml:"systemid"`
	SystemName string  `xml:"systemname"`
	LibKey     *string `xml:"libkey"`
	Category   string  `xml:"category"`
	URL        string  `xml:"url_pc"`
	Address    string  `xml:"address"`
	Pref       string  `xml:"pref"`
	City       string  `xml:"city"`
	Post       string  `xml:"post"`
	Tel        string  `xml:"tel"`
	Geocode    *string `xml:"geocode"`
}

// FetchLibraries downloads and parses the complete library list.
func (c *Client) FetchLibraries(ctx context.Context) ([]Library, error) {
	params := url.Values{}
	params.Set("appkey", c.appKey)

	body, err := c.http.Get(ctx, c.baseURL+"/library", params, libraryListMaxBytes)
	if err != nil {
		return nil, err
	}
	return ParseLibraries(body)
}

// ParseLibraries parses a library list document. Records lacking a name,
// system id, library key or a usable geocode are skipped.
func ParseLibraries(body []byte) ([]Library, error) {
	var feed libraryFeed
	if err := upstream.DecodeXML("calil", body, &feed); err != nil {
		return nil, err
	}

	out := make([]Library, 0, len(feed.Items))
	for _, rec := range feed.Items {
		if rec.Formal == nil || rec.SystemID == nil || rec.LibKey == nil || rec.Geocode == nil {
			continue
		}
		lat, lng, ok := parseGeocode(*rec.Geocode)
		if !ok {
			continue
		}
		out = append(out, Library{
			Name:       *rec.Formal,
			SystemID:   *rec.SystemID,
			SystemName: rec.SystemName,
			LibKey:     *rec.LibKey,
			Category:   rec.Category,
			URL:        rec.URL,
			Address:    rec.Address,
			Prefecture: rec.Pref,
			City:       rec.City,
			Postcode:   rec.Post,
			Tel:        rec.Tel,
			Lat:        lat,
			Lng:        lng,
		})
	}
	return out, nil
}

// parseGeocode reads Calil's "lng,lat" pair.
func parseGeocode(s string) (lat, lng float64, ok bool) {
	lngStr, latStr, found := strings.Cut(strings.TrimSpace(s), ",")
	if !found {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return 0, 0, false
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
