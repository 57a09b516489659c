package values

type Config interface {
}

// ChannelDefaults -- значения по умолчанию, подставляемые в payload,
// когда товар не задаёт их явно.
type ChannelDefaults struct {
	Currency     string `yaml:"currency"`
	CategoryCode string `yaml:"category-code"`
	LeadTimeDays int    `yaml:"lead-time-days"`
	MinQuantity  int    `yaml:"min-quantity"`
}
