package weather

// Snapshot feed for 8 Indian agricultural regions, December 2025.
var regionOrder = []string{
	"Punjab", "Haryana", "Maharashtra", "Karnataka",
	"Bihar", "Uttar Pradesh", "Rajasthan", "Tamil Nadu",
}

var regionReports = map[string]Report{
	"Punjab": {
		Region: "Punjab",
		Current: Current{
			Temp: 10, FeelsLike: 8, Condition: "Clear",
			Description: "Cold and clear skies - Winter conditions",
			Humidity:    72, WindSpeed: 15, Pressure: 1018, Visibility: 11, CloudCover: 15, RainChance: 5,
		},
		Forecast: []ForecastDay{
			{Day: "Mon", High: 14, Low: 6, Condition: "Clear", Rain: 0, Humidity: 70, WindSpeed: 12, Icon: "☀️"},
			{Day: "Tue", High: 12, Low: 5, Condition: "Cloudy", Rain: 10, Humidity: 75, WindSpeed: 14, Icon: "⛅"},
			{Day: "Wed", High: 9, Low: 3, Condition: "Rainy", Rain: 60, Humidity: 85, WindSpeed: 20, Icon: "🌧️"},
			{Day: "Thu", High: 8, Low: 2, Condition: "Rainy", Rain: 70, Humidity: 88, WindSpeed: 22, Icon: "🌧️"},
			{Day: "Fri", High: 11, Low: 4, Condition: "Cloudy", Rain: 25, Humidity: 78, WindSpeed: 16, Icon: "⛅"},
		},
		Alerts: []Advisory{
			{Type: "Frost Risk", Severity: "high", Description: "Temperature dropping to 2-3°C on Wed-Thu. Frost risk for sensitive crops. Provide protection."},
			{Type: "Cold Wave", Severity: "high", Description: "Winter cold conditions expected. Monitor crop health and provide adequate shelter for livestock."},
		},
		Recommendations: []string{
			"❄️ Frost protection needed for sensitive crops - Use mulch or covers",
			"🌾 Avoid irrigation during night hours to prevent frost damage",
			"🐛 Pest activity reduced due to cold - Good time for pest monitoring",
			"🌾 Harvesting window available on Mon-Tue before rain",
			"🌡️ Cold conditions - Provide wind breaks for crops",
		},
	},
	"Haryana": {
		Region: "Haryana",
		Current: Current{
			Temp: 11, FeelsLike: 9, Condition: "Clear",
			Description: "Cold winter morning with clear skies",
			Humidity:    68, WindSpeed: 13, Pressure: 1019, Visibility: 12, CloudCover: 10, RainChance: 2,
		},
		Forecast: []ForecastDay{
			{Day: "Mon", High: 15, Low: 7, Condition: "Clear", Rain: 0, Humidity: 65, WindSpeed: 11, Icon: "☀️"},
			{Day: "Tue", High: 13, Low: 6, Condition: "Sunny", Rain: 5, Humidity: 70, WindSpeed: 12, Icon: "☀️"},
			{Day: "Wed", High: 10, Low: 4, Condition: "Cloudy", Rain: 25, Humidity: 75, WindSpeed: 14, Icon: "⛅"},
			{Day: "Thu", High: 9, Low: 3, Condition: "Rainy", Rain: 55, Humidity: 82, WindSpeed: 18, Icon: "🌧️"},
			{Day: "Fri", High: 12, Low: 5, Condition: "Cloudy", Rain: 20, Humidity: 72, WindSpeed: 13, Icon: "⛅"},
		},
		Alerts: []Advisory{
			{Type: "Frost Alert", Severity: "high", Description: "Frost expected on Wed-Thu nights. Minimum temperature dropping to 3-4°C. Protect crops."},
		},
		Recommendations: []string{
			"❄️ Apply frost protection measures - Use straw mulch or covers",
			"💧 Reduce irrigation - Cold soil needs less water",
			"🌾 Clear harvesting conditions on Mon-Tue",
			"🐛 Continue pest monitoring despite cold conditions",
			"🌡️ Protect sensitive crops with frost cloths at night",
		},
	},
	"Maharashtra": {
		Region: "Maharashtra",
		Current: Current{
			Temp: 22, FeelsLike: 21, Condition: "Clear",
			Description: "Pleasant winter weather with clear skies",
			Humidity:    58, WindSpeed: 10, Pressure: 1016, Visibility: 13, CloudCover: 8, RainChance: 0,
		},
		Forecast: []ForecastDay{
			{Day: "Mon", High: 26, Low: 14, Condition: "Sunny", Rain: 0, Humidity: 55, WindSpeed: 9, Icon: "☀️"},
			{Day: "Tue", High: 27, Low: 15, Condition: "Sunny", Rain: 2, Humidity: 52, WindSpeed: 8, Icon: "☀️"},
			{Day: "Wed", High: 24, Low: 13, Condition: "Cloudy", Rain: 15, Humidity: 65, WindSpeed: 11, Icon: "⛅"},
			{Day: "Thu", High: 22, Low: 12, Condition: "Rainy", Rain: 45, Humidity: 75, WindSpeed: 14, Icon: "🌧️"},
			{Day: "Fri", High: 25, Low: 13, Condition: "Cloudy", Rain: 10, Humidity: 60, WindSpeed: 10, Icon: "⛅"},
		},
		Alerts: []Advisory{},
		Recommendations: []string{
			"💧 Moderate humidity - Regular irrigation schedule adequate",
			"🌾 Excellent conditions for harvesting on Mon-Tue",
			"🐛 Good window for pesticide application before rain on Thu",
			"🌾 Plan fertilizer application for early next week",
			"🌡️ Pleasant weather - Ideal for crop maintenance activities",
		},
	},
	"Karnataka": {
		Region: "Karnataka",
		Current: Current{
			Temp: 24, FeelsLike: 23, Condition: "Partly Cloudy",
			Description: "Warm winter day with scattered clouds",
			Humidity:    62, WindSpeed: 11, Pressure: 1014, Visibility: 12, CloudCover: 35, RainChance: 5,
		},
		Forecast: []ForecastDay{
			{Day: "Mon", High: 28, Low: 16, Condition: "Sunny", Rain: 0, Humidity: 58, WindSpeed: 9, Icon: "☀️"},
			{Day: "Tue", High: 29, Low: 17, Condition: "Clear", Rain: 0, Humidity: 55, WindSpeed: 8, Icon: "☀️"},
			{Day: "Wed", High: 27, Low: 15, Condition: "Cloudy", Rain: 20, Humidity: 68, WindSpeed: 12, Icon: "⛅"},
			{Day: "Thu", High: 25, Low: 14, Condition: "Rainy", Rain: 40, Humidity: 75, WindSpeed: 14, Icon: "🌧️"},
			{Day: "Fri", High: 27, Low: 15, Condition: "Cloudy", Rain: 15, Humidity: 65, WindSpeed: 10, Icon: "⛅"},
		},
		Alerts: []Advisory{},
		Recommendations: []string{
			"💧 Maintain regular irrigation - Warm conditions need water",
			"🌾 Perfect harvesting weather on Mon-Tue",
			"🐛 Good conditions for pest monitoring and control",
			"🌾 Apply fertilizer on Mon-Tue before rain",
			"🌡️ Warm conditions - Monitor soil moisture levels",
		},
	},
	"Bihar": {
		Region: "Bihar",
		Current: Current{
			Temp: 9, FeelsLike: 7, Condition: "Cloudy",
			Description: "Cold and cloudy - Winter conditions prevail",
			Humidity:    75, WindSpeed: 16, Pressure: 1017, Visibility: 10, CloudCover: 55, RainChance: 20,
		},
		Forecast: []ForecastDay{
			{Day: "Mon", High: 13, Low: 5, Condition: "Cloudy", Rain: 10, Humidity: 72, WindSpeed: 14, Icon: "⛅"},
			{Day: "Tue", High: 11, Low: 4, Condition: "Rainy", Rain: 65, Humidity: 85, WindSpeed: 18, Icon: "🌧️"},
			{Day: "Wed", High: 8, Low: 2, Condition: "Rainy", Rain: 75, Humidity: 88, WindSpeed: 20, Icon: "🌧️"},
			{Day: "Thu", High: 7, Low: 1, Condition: "Cloudy", Rain: 40, Humidity: 82, WindSpeed: 17, Icon: "⛅"},
			{Day: "Fri", High: 10, Low: 3, Condition: "Clear", Rain: 5, Humidity: 70, WindSpeed: 13, Icon: "☀️"},
		},
		Alerts: []Advisory{
			{Type: "Frost Risk", Severity: "high", Description: "Severe frost expected on Wed-Thu with temperatures dropping to 1-2°C. Heavy crop protection needed."},
			{Type: "Heavy Rain", Severity: "high", Description: "Heavy rainfall expected Tue-Wed with 65-75% probability. Ensure drainage is working."},
		},
		Recommendations: []string{
			"❄️ Critical frost protection - Use multiple layers of mulch",
			"💧 Avoid irrigation - Heavy rain forecasted",
			"🐛 Pesticide application not recommended - Heavy rain incoming",
			"🌾 Harvesting only on Mon morning before rain",
			"🌡️ Severe cold - Provide maximum protection for sensitive crops",
		},
	},
	"Uttar Pradesh": {
		Region: "Uttar Pradesh",
		Current: Current{
			Temp: 10, FeelsLike: 8, Condition: "Clear",
			Description: "Cold and crisp winter morning",
			Humidity:    70, WindSpeed: 14, Pressure: 1018, Visibility: 11, CloudCover: 12, RainChance: 3,
		},
		Forecast: []ForecastDay{
			{Day: "Mon", High: 14, Low: 5, Condition: "Clear", Rain: 0, Humidity: 68, WindSpeed: 12, Icon: "☀️"},
			{Day: "Tue", High: 12, Low: 4, Condition: "Sunny", Rain: 3, Humidity: 72, WindSpeed: 13, Icon: "☀️"},
			{Day: "Wed", High: 9, Low: 2, Condition: "Cloudy", Rain: 20, Humidity: 78, WindSpeed: 15, Icon: "⛅"},
			{Day: "Thu", High: 8, Low: 1, Condition: "Rainy", Rain: 50, Humidity: 85, WindSpeed: 18, Icon: "🌧️"},
			{Day: "Fri", High: 11, Low: 3, Condition: "Cloudy", Rain: 15, Humidity: 75, WindSpeed: 13, Icon: "⛅"},
		},
		Alerts: []Advisory{
			{Type: "Frost Risk", Severity: "high", Description: "Frost alert for Wed-Thu. Temperature dropping to 1-2°C. Crop protection essential."},
		},
		Recommendations: []string{
			"❄️ Apply frost protection layers to sensitive crops",
			"💧 Reduce irrigation to minimum - Cold conditions reduce water need",
			"🌾 Clear harvesting window on Mon-Tue",
			"🐛 Avoid pesticide spraying - Heavy rain Thu",
			"🌡️ Extreme cold - Mulch and cover crops heavily",
		},
	},
	"Rajasthan": {
		Region: "Rajasthan",
		Current: Current{
			Temp: 16, FeelsLike: 15, Condition: "Clear",
			Description: "Cool winter day with clear skies",
			Humidity:    52, WindSpeed: 12, Pressure: 1015, Visibility: 13, CloudCover: 5, RainChance: 0,
		},
		Forecast: []ForecastDay{
			{Day: "Mon", High: 22, Low: 10, Condition: "Clear", Rain: 0, Humidity: 50, WindSpeed: 10, Icon: "☀️"},
			{Day: "Tue", High: 23, Low: 11, Condition: "Sunny", Rain: 0, Humidity: 48, WindSpeed: 9, Icon: "☀️"},
			{Day: "Wed", High: 20, Low: 9, Condition: "Cloudy", Rain: 10, Humidity: 60, WindSpeed: 11, Icon: "⛅"},
			{Day: "Thu", High: 18, Low: 8, Condition: "Partly Rainy", Rain: 30, Humidity: 68, WindSpeed: 13, Icon: "⛅"},
			{Day: "Fri", High: 20, Low: 9, Condition: "Clear", Rain: 0, Humidity: 55, WindSpeed: 11, Icon: "☀️"},
		},
		Alerts: []Advisory{},
		Recommendations: []string{
			"💧 Irrigation needed - Low humidity and clear skies",
			"🌾 Excellent harvesting conditions on Mon-Tue",
			"🐛 Pest monitoring continues - Favorable conditions",
			"🌾 Apply fertilizer on Mon-Tue for best results",
			"🌡️ Cool weather - Ideal for many crop activities",
		},
	},
	"Tamil Nadu": {
		Region: "Tamil Nadu",
		Current: Current{
			Temp: 26, FeelsLike: 28, Condition: "Partly Cloudy",
			Description: "Warm and humid with scattered clouds",
			Humidity:    72, WindSpeed: 12, Pressure: 1014, Visibility: 10, CloudCover: 45, RainChance: 15,
		},
		Forecast: []ForecastDay{
			{Day: "Mon", High: 30, Low: 20, Condition: "Cloudy", Rain: 10, Humidity: 70, WindSpeed: 11, Icon: "⛅"},
			{Day: "Tue", High: 31, Low: 21, Condition: "Rainy", Rain: 50, Humidity: 78, WindSpeed: 13, Icon: "🌧️"},
			{Day: "Wed", High: 29, Low: 20, Condition: "Rainy", Rain: 60, Humidity: 80, WindSpeed: 14, Icon: "🌧️"},
			{Day: "Thu", High: 28, Low: 19, Condition: "Cloudy", Rain: 35, Humidity: 76, WindSpeed: 12, Icon: "⛅"},
			{Day: "Fri", High: 30, Low: 20, Condition: "Cloudy", Rain: 20, Humidity: 72, WindSpeed: 11, Icon: "⛅"},
		},
		Alerts: []Advisory{
			{Type: "High Humidity", Severity: "medium", Description: "High humidity throughout the week. Monitor closely for fungal diseases."},
		},
		Recommendations: []string{
			"💧 High humidity - Reduce irrigation frequency",
			"🐛 Fungal disease risk - Apply preventive fungicide",
			"🌾 Avoid fertilizer application during rain",
			"🌾 Plan harvesting for late Mon or next week",
			"🌡️ Ensure good air circulation around crops",
		},
	},
}
