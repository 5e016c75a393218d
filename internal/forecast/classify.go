package forecast

// Condition is the display description and icon of a weather code.
type Condition struct {
	Description string
	IconID      string
}

var (
	clearSky     = Condition{Description: "Clear", IconID: "sun"}
	partlyCloudy = Condition{Description: "Partly Cloudy", IconID: "cloud-sun"}
	cloudy       = Condition{Description: "Cloudy", IconID: "cloud"}
	foggy        = Condition{Description: "Foggy", IconID: "cloud-fog"}
	rainy        = Condition{Description: "Rainy", IconID: "cloud-rain"}
	snowy        = Condition{Description: "Snowy", IconID: "cloud-snow"}
	stormy       = Condition{Description: "Stormy", IconID: "cloud-bolt-rain"}
	unknown      = Condition{Description: "Unknown", IconID: "question-mark"}
)

// Classify maps a WMO weather code as reported by Open-Meteo to its condition.
// Codes outside the table resolve to "Unknown".
func Classify(code int) Condition {
	switch code {
	case 0:
		return clearSky
	case 1, 2:
		return partlyCloudy
	case 3:
		return cloudy
	case 45, 48:
		return foggy
	case 51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 80, 81, 82:
		return rainy
	case 71, 73, 75, 77, 85, 86:
		return snowy
	case 95, 96, 99:
		return stormy
	default:
		return unknown
	}
}
