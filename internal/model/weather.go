package model

// WeatherReport is the flattened, read-only view of a current-weather
// response, ready for rendering as a result card.
type WeatherReport struct {
	Location    string  `json:"location"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	Visibility  int     `json:"visibility"`
}

// NewWeatherReport flattens the raw API payload into a WeatherReport.
func NewWeatherReport(data OpenWeatherMapResponse) *WeatherReport {
	report := &WeatherReport{
		Location:    data.Name,
		Temperature: data.Main.Temp,
		FeelsLike:   data.Main.FeelsLike,
		TempMin:     data.Main.TempMin,
		TempMax:     data.Main.TempMax,
		Humidity:    data.Main.Humidity,
		Pressure:    data.Main.Pressure,
		WindSpeed:   data.Wind.Speed,
		Visibility:  data.Visibility,
	}
	if len(data.Weather) > 0 {
		report.Condition = data.Weather[0].Main
		report.Description = data.Weather[0].Description
		report.Icon = data.Weather[0].Icon
	}
	return report
}
