package consts

// PriceNotAvailable is stored for services extracted without a price.
const PriceNotAvailable = "N/A"

// DefaultWorkingHours is the fallback the extraction prompt mandates when the
// scraped page does not state opening hours.
const DefaultWorkingHours = "Man-Fre: 07:00-16:00"

const (
	RepoNamePrefix = "site-"
	ConfigFilePath = "site-config.json"
)
