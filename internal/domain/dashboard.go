package domain

// Weather, market, activity, and alert shapes mirror the dashboard feeds of
// the advisory backend. Fields the client never renders are omitted.

// WeatherCondition is one OpenWeather-style condition snapshot.
type WeatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CurrentWeather struct {
	Temp      float64            `json:"temp"`
	Humidity  float64            `json:"humidity"`
	WindSpeed float64            `json:"wind_speed"`
	Weather   []WeatherCondition `json:"weather"`
}

// Condition is the primary condition description, empty when none was
// reported.
func (c CurrentWeather) Condition() string {
	if len(c.Weather) == 0 {
		return ""
	}
	return c.Weather[0].Description
}

type DailyForecast struct {
	Date     string  `json:"date"`
	TempMax  float64 `json:"temp_max"`
	TempMin  float64 `json:"temp_min"`
	Humidity float64 `json:"humidity"`
	// Pop is the probability of precipitation in [0,1].
	Pop     float64            `json:"pop"`
	Weather []WeatherCondition `json:"weather"`
}

func (d DailyForecast) Condition() string {
	if len(d.Weather) == 0 {
		return ""
	}
	return d.Weather[0].Description
}

type WeatherForecast struct {
	District string          `json:"district"`
	Current  CurrentWeather  `json:"current"`
	Daily    []DailyForecast `json:"daily"`
}

// PricePoint is one day of the 30-day price history, oldest first.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// MandiPrice is the current price in one market, the user's own district
// sorted first.
type MandiPrice struct {
	District       string  `json:"district"`
	Price          float64 `json:"price"`
	IsUserDistrict bool    `json:"is_user_district"`
	Trend          string  `json:"trend"`
}

type MarketHistory struct {
	Crop         string       `json:"crop"`
	District     string       `json:"district"`
	PriceHistory []PricePoint `json:"price_history"`
	NearbyPrices []MandiPrice `json:"nearby_prices"`
}

type WeatherAlert struct {
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}
