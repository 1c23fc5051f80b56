package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownWeather = errors.New("unknown weather condition")

// Weather 天气状况
type Weather string

const (
	WeatherClear  Weather = "clear"
	WeatherCloudy Weather = "cloudy"
	WeatherRain   Weather = "rain"
	WeatherSnow   Weather = "snow"
	WeatherFog    Weather = "fog"
)

// 天气对通行能力的影响系数，取值范围(0,1]
var weatherImpact = map[Weather]float64{
	WeatherClear:  1.00,
	WeatherCloudy: 0.95,
	WeatherRain:   0.80,
	WeatherSnow:   0.60,
	WeatherFog:    0.70,
}

// ParseWeather 解析天气名称
func ParseWeather(s string) (Weather, error) {
	w := Weather(s)
	if _, ok := weatherImpact[w]; !ok {
		return WeatherClear, fmt.Errorf("%w: %q", ErrUnknownWeather, s)
	}
	return w, nil
}

// Impact 天气通行系数
// 功能：查表返回天气对车辆到达与通行的乘数
// 返回：系数，未知天气按晴天1.0处理
func (w Weather) Impact() float64 {
	if impact, ok := weatherImpact[w]; ok {
		return impact
	}
	return 1.0
}
