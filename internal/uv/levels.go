package uv

// LevelInfo describes the risk tier of a single instantaneous UV index
// value: how fast unprotected skin burns and what to do about it.
type LevelInfo struct {
	Level           string   `json:"level"`
	Range           string   `json:"range"`
	Color           string   `json:"color"`
	BurnTime        string   `json:"burnTime"`
	Risk            string   `json:"risk"`
	Recommendations []string `json:"recommendations"`
	Description     string   `json:"description"`
}

// AccumulationLevelInfo describes the risk tier of a summed UV total over a
// time window. The thresholds and advice are a different scale from the
// instantaneous tiers and must not be conflated with them.
type AccumulationLevelInfo struct {
	Level             string   `json:"level"`
	Color             string   `json:"color"`
	Icon              string   `json:"icon"`
	Description       string   `json:"description"`
	Recommendation    string   `json:"recommendation"`
	HealthImpact      string   `json:"healthImpact"`
	HealthRisks       []string `json:"healthRisks"`
	PreventionActions []string `json:"preventionActions"`
}

// ClassifyInstant maps a single UV index value onto its risk tier.
// Thresholds: Low <=2, Moderate <=5, High <=7, Very High <=10, Extreme above.
func ClassifyInstant(uvi float64) LevelInfo {
	switch {
	case uvi <= 2:
		return LevelInfo{
			Level:    "Low",
			Range:    "1-2",
			Color:    "green",
			BurnTime: "60 minutes",
			Risk:     "Minimal risk of sunburn",
			Recommendations: []string{
				"Use sunscreen of at least SPF 30",
				"Still take precautions when going outdoors",
				"After 60 minutes, you can get a burn on unprotected skin",
			},
			Description: "A UV index of 1-2 puts you at minimal risk of sunburn, but still take precautions when going outdoors.",
		}
	case uvi <= 5:
		return LevelInfo{
			Level:    "Moderate",
			Range:    "3-5",
			Color:    "yellow",
			BurnTime: "45 minutes",
			Risk:     "Moderate risk",
			Recommendations: []string{
				"Reapply sunscreen every two hours",
				"Wear sunglasses",
				"Limit time outside between 10 am and 4 pm",
				"The sun is most intense during midday hours",
			},
			Description: "There is a moderate risk at UV levels of 3-5, with burns occurring after 45 minutes of sun exposure.",
		}
	case uvi <= 7:
		return LevelInfo{
			Level:    "High",
			Range:    "6-7",
			Color:    "orange",
			BurnTime: "30 minutes",
			Risk:     "High risk",
			Recommendations: []string{
				"Wear sun-protective clothing (long-sleeved shirt, long pants)",
				"Wear a hat with a wide brim",
				"Apply broad-spectrum sunscreen to uncovered skin",
				"Reapply sunscreen every two hours",
				"Avoid time outside or seek shade during peak sun hours",
			},
			Description: "Within 30 minutes of sun exposure at a UV index of 6-7, the sun can burn the skin.",
		}
	case uvi <= 10:
		return LevelInfo{
			Level:    "Very High",
			Range:    "8-10",
			Color:    "red",
			BurnTime: "15-25 minutes",
			Risk:     "Very high intensity",
			Recommendations: []string{
				"Wear sunscreen of at least SPF 50",
				"Limit time outdoors",
				"Any unprotected skin can be affected",
				"Wear sun-protective clothing",
				"Seek shade when outdoors, especially during peak UV radiation hours (10 am-4 pm)",
			},
			Description: "At a UV index of 8-10, there is a high intensity of ultraviolet radiation. After just 15-25 minutes of exposure, you can burn.",
		}
	default:
		return LevelInfo{
			Level:    "Extreme",
			Range:    "11+",
			Color:    "purple",
			BurnTime: "Less than 10 minutes",
			Risk:     "Extreme - Long-lasting damage possible",
			Recommendations: []string{
				"Apply SPF 50+ sunscreen",
				"Wear clothing that covers arms and legs",
				"Avoid direct contact with sunlight as much as possible",
				"Chronic exposure brings high risk of skin cancer",
				"Any exposure can cause long-lasting damage",
			},
			Description: "A UV index of 11+ is extreme. Any exposure to this UV intensity can cause long-lasting damage. In less than 10 minutes, you can get a sunburn.",
		}
	}
}

// ClassifyAccumulation maps a summed UV total onto its exposure tier.
// Thresholds: Low <=10, Moderate <=30, High <=60, Very High above.
// Boundaries are inclusive on the lower tier.
func ClassifyAccumulation(value float64) AccumulationLevelInfo {
	switch {
	case value <= 10:
		return AccumulationLevelInfo{
			Level:          "Low",
			Color:          "green",
			Icon:           "✅",
			Description:    "Minimal sun exposure. Your skin is well protected.",
			Recommendation: "Continue normal outdoor activities with basic sun protection.",
			HealthImpact:   "Very low risk of skin damage or sunburn.",
			HealthRisks: []string{
				"Minimal risk of UV-related illnesses",
				"Skin damage is unlikely at this level",
				"No immediate health concerns from UV exposure",
			},
			PreventionActions: []string{
				"Maintain your current sun protection habits",
				"Apply SPF 15+ sunscreen when outdoors",
				"Continue checking UV levels daily",
			},
		}
	case value <= 30:
		return AccumulationLevelInfo{
			Level:          "Moderate",
			Color:          "yellow",
			Icon:           "⚠️",
			Description:    "Moderate cumulative sun exposure detected.",
			Recommendation: "Apply SPF 30+ sunscreen and wear protective clothing when outdoors.",
			HealthImpact:   "Some UV exposure accumulation. Light tanning may occur.",
			HealthRisks: []string{
				"Risk of accelerated skin aging (premature wrinkles, age spots)",
				"Potential for minor sun burns if exposure continues",
				"Early signs of sun damage may develop",
				"Risk of photoaging - skin texture changes",
			},
			PreventionActions: []string{
				"Use SPF 30+ broad-spectrum sunscreen daily",
				"Reapply sunscreen every 2 hours or after swimming",
				"Wear protective clothing (long sleeves, pants)",
				"Limit outdoor time during peak hours (10 AM - 4 PM)",
				"Wear a wide-brimmed hat and UV-blocking sunglasses",
			},
		}
	case value <= 60:
		return AccumulationLevelInfo{
			Level:          "High",
			Color:          "orange",
			Icon:           "⚠️",
			Description:    "Significant cumulative UV exposure over this period.",
			Recommendation: "Use high SPF sunscreen (50+), seek shade during peak hours (10AM-4PM), and wear full sun protection.",
			HealthImpact:   "Noticeable risk of sunburn and skin damage. Extra caution advised.",
			HealthRisks: []string{
				"Increased risk of melanoma (skin cancer) development",
				"Risk of basal cell and squamous cell carcinoma",
				"Significant photoaging - visible wrinkles and age spots",
				"Risk of solar lentigines (sun spots/liver spots)",
				"Potential eye damage (cataracts) with long-term exposure",
				"Immunosuppression affecting skin's defense mechanisms",
			},
			PreventionActions: []string{
				"Apply SPF 50+ broad-spectrum sunscreen liberally",
				"Reapply every 1-2 hours or immediately after water exposure",
				"Seek shade whenever possible, especially 10 AM - 4 PM",
				"Wear protective UPF clothing, hats, and UV-blocking sunglasses",
				"Consider staying indoors during peak UV hours",
				"Schedule skin cancer screenings with a dermatologist",
				"Use lip balm with SPF 30+",
				"Avoid tanning beds and sun lamps",
			},
		}
	default:
		return AccumulationLevelInfo{
			Level:          "Very High",
			Color:          "red",
			Icon:           "🚨",
			Description:    "Excessive cumulative UV exposure. Immediate protective measures needed.",
			Recommendation: "Limit outdoor time, use SPF 50+ sunscreen, wear hat/sunglasses, seek shade, and consider staying indoors during peak hours.",
			HealthImpact:   "High risk of significant skin damage, sunburn, and accelerated aging.",
			HealthRisks: []string{
				"Very high risk of melanoma - most dangerous form of skin cancer",
				"Increased likelihood of basal cell carcinoma and squamous cell carcinoma",
				"Severe photoaging with deep wrinkles, leathery skin, and pigmentation changes",
				"High risk of solar keratosis (precancerous growths)",
				"Risk of pterygium (tissue growth on the eye)",
				"Photokeratitis (temporary eye damage from UV exposure)",
				"Skin texture degradation and permanent damage",
				"Immunosuppression affecting skin's defense mechanisms",
			},
			PreventionActions: []string{
				"Minimize outdoor exposure - stay indoors when possible",
				"Apply SPF 50+ waterproof sunscreen generously every 1-2 hours",
				"Wear protective UPF 50+ clothing and wide-brimmed hats",
				"Use UV-blocking sunglasses that block 99-100% of UVA/UVB",
				"Seek shade at all times, especially 10 AM - 4 PM",
				"Use umbrellas or sun shelters when outdoors",
				"Visit a dermatologist immediately for skin examination",
				"Perform monthly self-examinations using the ABCDE method for moles",
				"Consider vitamin D supplementation instead of sun exposure",
				"Avoid tanning beds and reflective surfaces that intensify UV",
				"Keep records of cumulative UV exposure for health monitoring",
			},
		}
	}
}

// AllLevels returns the static table of instantaneous tiers in ascending
// severity, for legend-style displays.
func AllLevels() []LevelInfo {
	return []LevelInfo{
		{Level: "Low", Range: "1-2", Color: "green", BurnTime: "60 minutes", Risk: "Minimal"},
		{Level: "Moderate", Range: "3-5", Color: "yellow", BurnTime: "45 minutes", Risk: "Moderate"},
		{Level: "High", Range: "6-7", Color: "orange", BurnTime: "30 minutes", Risk: "High"},
		{Level: "Very High", Range: "8-10", Color: "red", BurnTime: "15-25 minutes", Risk: "Very High"},
		{Level: "Extreme", Range: "11+", Color: "purple", BurnTime: "<10 minutes", Risk: "Extreme"},
	}
}
