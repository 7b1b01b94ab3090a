package listing

// Canonical enumerations for the create/edit forms. These are a
// separate source of truth from FacetOptions: the forms offer the full
// domain catalog while the listing dropdowns only offer values present
// in the loaded collection. Do not merge them.
var (
	PropertyTypes = []string{
		"Apartment",
		"Villa",
		"Plot",
		"Commercial",
		"Penthouse",
	}

	PropertyStatuses = []string{
		"New Launch",
		"Under Construction",
		"Ready to Move",
	}

	InvestmentPeriods = []string{
		"1-3 Years",
		"3-5 Years",
		"5+ Years",
	}

	Valuations = []string{
		"Undervalued",
		"Fair Value",
		"Premium",
	}

	BlogCategories = []string{
		"Market Trends",
		"Investment Guide",
		"Legal",
		"Lifestyle",
		"News",
	}
)
