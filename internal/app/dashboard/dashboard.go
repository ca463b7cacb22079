// Package dashboard loads the widget feeds shown outside the chat view.
package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agri-sahayak/sahayak-cli/internal/app/greeting"
	"github.com/agri-sahayak/sahayak-cli/internal/domain"
	"github.com/agri-sahayak/sahayak-cli/internal/observability"
)

// Data is one dashboard load. A feed that failed is simply zero; the
// dashboard degrades per-widget instead of failing outright.
type Data struct {
	Forecast   *domain.WeatherForecast
	Market     *domain.MarketHistory
	Activities []string
	Alerts     []domain.WeatherAlert
}

type Service struct {
	backend domain.Backend
	tr      greeting.Translator
	lang    domain.LanguageCode
	now     func() time.Time
}

func NewService(backend domain.Backend, tr greeting.Translator, lang domain.LanguageCode) *Service {
	return &Service{backend: backend, tr: tr, lang: lang, now: time.Now}
}

// Load fetches the four feeds concurrently. Crop activities need the
// profile's crop and the current month name, so that feed rides on its own
// profile fetch.
func (s *Service) Load(ctx context.Context, userID domain.UserID) *Data {
	log := observability.LoggerFromContext(ctx).With("user_id", userID)
	data := &Data{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := s.backend.WeatherForecast(ctx, userID)
		if err != nil {
			log.Warn("weather forecast unavailable", "error", err)
			return nil
		}
		data.Forecast = f
		return nil
	})
	g.Go(func() error {
		m, err := s.backend.MarketPriceHistory(ctx, userID)
		if err != nil {
			log.Warn("market history unavailable", "error", err)
			return nil
		}
		data.Market = m
		return nil
	})
	g.Go(func() error {
		profile, err := s.backend.GetUser(ctx, userID)
		if err != nil || profile.Crop == "" {
			if err != nil {
				log.Warn("profile unavailable for crop activities", "error", err)
			}
			return nil
		}
		acts, err := s.backend.CropActivities(ctx, profile.Crop, s.now().Month().String())
		if err != nil {
			log.Warn("crop activities unavailable", "error", err)
			return nil
		}
		data.Activities = acts
		return nil
	})
	g.Go(func() error {
		alerts, err := s.backend.WeatherAlerts(ctx, userID)
		if err != nil {
			log.Warn("weather alerts unavailable", "error", err)
			return nil
		}
		data.Alerts = alerts
		return nil
	})

	_ = g.Wait()
	return data
}

// InitiateCall asks the backend to ring the user and returns the localized
// confirmation line for inline display.
func (s *Service) InitiateCall(ctx context.Context, userID domain.UserID) (string, error) {
	sid, err := s.backend.InitiateCall(ctx, userID)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("call initiation failed", "error", err)
		return "", err
	}
	if sid != "" {
		return greeting.TOr(s.tr, "callInitiated", s.lang,
			"Call initiated. Your phone will ring shortly."), nil
	}
	return greeting.TOr(s.tr, "callInitiatedShort", s.lang, "Call initiated."), nil
}
