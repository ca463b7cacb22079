package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agri-sahayak/sahayak-cli/internal/app/dashboard"
	"github.com/agri-sahayak/sahayak-cli/internal/app/greeting"
	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

type stubBackend struct {
	domain.Backend

	forecastErr error
	marketErr   error
	callSID     string
	callErr     error
	gotMonth    string
}

func (s *stubBackend) GetUser(_ context.Context, id domain.UserID) (*domain.Profile, error) {
	return &domain.Profile{ID: id, Crop: "wheat"}, nil
}

func (s *stubBackend) WeatherForecast(context.Context, domain.UserID) (*domain.WeatherForecast, error) {
	if s.forecastErr != nil {
		return nil, s.forecastErr
	}
	return &domain.WeatherForecast{District: "Ludhiana"}, nil
}

func (s *stubBackend) MarketPriceHistory(context.Context, domain.UserID) (*domain.MarketHistory, error) {
	if s.marketErr != nil {
		return nil, s.marketErr
	}
	return &domain.MarketHistory{Crop: "wheat"}, nil
}

func (s *stubBackend) CropActivities(_ context.Context, crop, month string) ([]string, error) {
	s.gotMonth = month
	return []string{"irrigate " + crop}, nil
}

func (s *stubBackend) WeatherAlerts(context.Context, domain.UserID) ([]domain.WeatherAlert, error) {
	return []domain.WeatherAlert{{Severity: "high", Title: "Heat wave"}}, nil
}

func (s *stubBackend) InitiateCall(context.Context, domain.UserID) (string, error) {
	return s.callSID, s.callErr
}

func TestLoadAllFeeds(t *testing.T) {
	b := &stubBackend{}
	svc := dashboard.NewService(b, greeting.NewCatalog(), domain.LangEnglish)

	data := svc.Load(context.Background(), "u1")

	require.NotNil(t, data.Forecast)
	assert.Equal(t, "Ludhiana", data.Forecast.District)
	require.NotNil(t, data.Market)
	assert.Equal(t, []string{"irrigate wheat"}, data.Activities)
	require.Len(t, data.Alerts, 1)
	assert.NotEmpty(t, b.gotMonth)
}

func TestLoadDegradesPerFeed(t *testing.T) {
	b := &stubBackend{forecastErr: errors.New("down"), marketErr: errors.New("down")}
	svc := dashboard.NewService(b, greeting.NewCatalog(), domain.LangEnglish)

	data := svc.Load(context.Background(), "u1")

	assert.Nil(t, data.Forecast)
	assert.Nil(t, data.Market)
	assert.NotEmpty(t, data.Activities, "healthy feeds still load")
	assert.NotEmpty(t, data.Alerts)
}

func TestInitiateCallMessages(t *testing.T) {
	svc := dashboard.NewService(&stubBackend{callSID: "CA1"}, greeting.NewCatalog(), domain.LangEnglish)
	msg, err := svc.InitiateCall(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Call initiated. Your phone will ring shortly.", msg)

	svc = dashboard.NewService(&stubBackend{}, greeting.NewCatalog(), domain.LangEnglish)
	msg, err = svc.InitiateCall(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Call initiated.", msg)

	svc = dashboard.NewService(&stubBackend{callErr: errors.New("down")}, greeting.NewCatalog(), domain.LangEnglish)
	_, err = svc.InitiateCall(context.Background(), "u1")
	assert.Error(t, err)
}
