package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ercot_spp_notify/internal/notify"
	"ercot_spp_notify/internal/report"
	"ercot_spp_notify/internal/scrape"
	"ercot_spp_notify/internal/subscribers"

	"github.com/rs/zerolog"
)

// Fetcher retrieves the raw SPP page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Publisher receives a copy of every outgoing message. Optional.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type Deps struct {
	Locator     *scrape.Locator
	Fetcher     Fetcher
	Subscribers subscribers.Store
	Notifier    *notify.Notifier
	Publisher   Publisher
	Zones       []report.Zone
}

// Result describes one run. PipelineErr is set when the fallback message was
// sent; DeliveryErr joins per-recipient send failures and publish errors.
type Result struct {
	URL         string
	Message     string
	Fallback    bool
	Delivery    notify.Delivery
	PipelineErr error
	DeliveryErr error
}

// Run performs one full cycle: build today's report, or the fallback message
// if any stage of fetching and parsing fails, then deliver it to every
// subscriber. Only a failure to load subscribers aborts the run.
func Run(ctx context.Context, deps Deps) (Result, error) {
	logger := zerolog.Ctx(ctx)

	subs, err := deps.Subscribers.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load subscribers: %w", err)
	}
	logger.Info().Int("subscribers", len(subs)).Msg("subscribers loaded")

	day := deps.Locator.Today()
	url := deps.Locator.URL(day)
	res := Result{URL: url}

	zones := deps.Zones
	if zones == nil {
		zones = report.CuratedZones
	}

	msg, err := buildReport(ctx, deps.Fetcher, url, day, zones)
	if err != nil {
		logger.Error().Err(err).Str("url", url).Msg("failed to build report, sending fallback")
		msg = report.Fallback(url)
		res.Fallback = true
		res.PipelineErr = err
	}
	res.Message = msg

	var publishErr error
	if deps.Publisher != nil {
		if err := deps.Publisher.Publish(ctx, NewMessage(url, msg, deps.Locator.Clock.Now())); err != nil {
			logger.Error().Err(err).Msg("failed to publish message")
			publishErr = fmt.Errorf("failed to publish message: %w", err)
		}
	}

	res.Delivery = deps.Notifier.Notify(ctx, msg, subs)
	res.DeliveryErr = errors.Join(publishErr, res.Delivery.Err)

	return res, nil
}

// buildReport is the fetch, parse, aggregate and format unit. Any error it
// returns is one of scrape.TransportError, scrape.HTTPError or scrape.ParseError.
func buildReport(ctx context.Context, f Fetcher, url string, day time.Time, zones []report.Zone) (string, error) {
	body, err := f.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	series, err := scrape.ParseBytes(body)
	if err != nil {
		return "", err
	}
	zerolog.Ctx(ctx).Debug().Int("observations", series.Len()).Strs("zones", series.Zones()).Msg("table parsed")

	summary := report.Aggregate(series, zones)
	return report.Format(day, summary).String(), nil
}
