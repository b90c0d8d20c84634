package library

import (
	"context"

	"bookfinder/internal/platform/calil"
)

// CalilSource reads the library list from the Calil API.
type CalilSource struct {
	client *calil.Client
}

func NewCalilSource(client *calil.Client) *CalilSource {
	return &CalilSource{client: client}
}

func (s *CalilSource) FetchLibraries(ctx context.Context) ([]Library, error) {
	records, err := s.client.FetchLibraries(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Library, 0, len(records))
	for _, rec := range records {
		out = append(out, Library{
			Name:       rec.Name,
			SystemID:   rec.SystemID,
			SystemName: rec.SystemName,
			LibKey:     rec.LibKey,
			Category:   rec.Category,
			URL:        rec.URL,
			Address:    rec.Address,
			Prefecture: rec.Prefecture,
			City:       rec.City,
			Postcode:   rec.Postcode,
			Tel:        rec.Tel,
			Geocode:    Geocode{Lat: rec.Lat, Lng: rec.Lng},
		})
	}
	return out, nil
}
