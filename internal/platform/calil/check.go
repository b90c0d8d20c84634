package calil

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"bookfinder/internal/platform/upstream"
)

// JobState tracks a check job through its lifetime.
type JobState int

const (
	StateSubmitted JobState = iota
	StatePolling
	StateComplete
	StateFailed
)

func (s JobState) String() string {
	switch s {
	case StateSubmitted:
		return "submitted"
	case StatePolling:
		return "polling"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is the raw holding token one library key reported for a system.
type Status struct {
	SystemID string
	LibKey   string
	Token    string
}

// Job is one availability check. It lives for a single Check call.
type Job struct {
	ISBN     string
	Session  string
	Continue bool
	State    JobState
	Rounds   int
	Statuses []Status
}

type checkResponse struct {
	XMLName  xml.Name    `xml:"result"`
	Session  *string     `xml:"session"`
	Continue *string     `xml:"continue"`
	Books    *checkBooks `xml:"books"`
}

type checkBooks struct {
	Books []checkBook `xml:"book"`
}

type checkBook struct {
	ISBN    string        `xml:"isbn,attr"`
	Systems []checkSystem `xml:"system"`
}

type checkSystem struct {
	SystemID string        `xml:"systemid,attr"`
	Status   string        `xml:"status"`
	LibKeys  []checkLibKey `xml:"libkeys>libkey"`
}

type checkLibKey struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type checkRound struct {
	session  string
	more     bool
	statuses []Status
}

// Check submits a holding check for isbn across systemIDs and polls until
// the service reports completion. Each round's statuses replace the previous
// round's. When the client has a MaxWait budget and it runs out, the error
// wraps upstream.ErrTimeout.
func (c *Client) Check(ctx context.Context, isbn string, systemIDs []string) (*Job, error) {
	parent := ctx
	if c.maxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.maxWait)
		defer cancel()
	}

	job := &Job{ISBN: isbn, State: StateSubmitted}

	params := url.Values{}
	params.Set("appkey", c.appKey)
	params.Set("isbn", isbn)
	params.Set("systemid", strings.Join(systemIDs, ","))
	params.Set("format", "xml")

	for {
		round, err := c.checkRound(ctx, params)
		if err != nil {
			job.State = StateFailed
			return job, c.jobError(parent, ctx, err)
		}
		job.Rounds++
		job.Session = round.session
		job.Continue = round.more
		job.Statuses = round.statuses

		slog.Debug("calil check round",
			"isbn", isbn,
			"round", job.Rounds,
			"continue", job.Continue,
			"statuses", len(job.Statuses),
		)

		if !job.Continue {
			job.State = StateComplete
			return job, nil
		}
		job.State = StatePolling

		if err := c.wait(ctx); err != nil {
			job.State = StateFailed
			return job, c.jobError(parent, ctx, err)
		}

		params = url.Values{}
		params.Set("appkey", c.appKey)
		params.Set("session", job.Session)
		params.Set("format", "xml")
	}
}

func (c *Client) wait(ctx context.Context) error {
	timer := time.NewTimer(c.pollInterval)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// jobError reports a deadline that came from the job budget as ErrTimeout,
// leaving the caller's own cancellation untouched. The throttle can give up
// before the budget has actually expired, so a deadline error counts even
// while job is still live.
func (c *Client) jobError(parent, job context.Context, err error) error {
	if parent.Err() != nil {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || job.Err() != nil {
		return fmt.Errorf("calil check after %s: %w", c.maxWait, upstream.ErrTimeout)
	}
	return err
}

func (c *Client) checkRound(ctx context.Context, params url.Values) (*checkRound, error) {
	body, err := c.http.Get(ctx, c.baseURL+"/check", params, upstream.DefaultMaxBodyBytes)
	if err != nil {
		return nil, err
	}
	return parseCheck(body)
}

func parseCheck(body []byte) (*checkRound, error) {
	var resp checkResponse
	if err := upstream.DecodeXML("calil", body, &resp); err != nil {
		return nil, err
	}
	if resp.Session == nil {
		return nil, upstream.NewParseError("calil", errors.New("missing session"))
	}
	if resp.Continue == nil {
		return nil, upstream.NewParseError("calil", errors.New("missing continue"))
	}
	if resp.Books == nil || len(resp.Books.Books) == 0 {
		return nil, upstream.NewParseError("calil", errors.New("missing book"))
	}

	round := &checkRound{
		session: strings.TrimSpace(*resp.Session),
		more:    strings.TrimSpace(*resp.Continue) != "0",
	}

	for _, sys := range resp.Books.Books[0].Systems {
		if sys.SystemID == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(sys.Status), "error") {
			slog.Warn("calil system reported error", "systemid", sys.SystemID)
		}
		for _, lk := range sys.LibKeys {
			if lk.Name == "" {
				continue
			}
			round.statuses = append(round.statuses, Status{
				SystemID: sys.SystemID,
				LibKey:   lk.Name,
				Token:    lk.Value,
			})
		}
	}
	return round, nil
}
