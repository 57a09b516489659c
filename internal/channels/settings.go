package channels

import (
	"fmt"
	"strconv"
	"time"
)

// Настройки каналов хранятся как карты строк, но разбираются в типизированные
// структуры с перечисленным набором ключей. Ключ вне набора не игнорируется
// молча -- по нему возвращается предупреждение.

const (
	SettingCurrency     = "currency"
	SettingCategoryCode = "category_code"
	SettingLeadTimeDays = "lead_time_days"
	SettingShopID       = "shop_id"
	SettingTimeout      = "timeout_seconds"
	SettingLocale       = "locale"
	SettingMinQuantity  = "min_quantity"
	SettingOperator     = "operator"
)

var recognizedSettings = map[string]struct{}{
	SettingCurrency:     {},
	SettingCategoryCode: {},
	SettingLeadTimeDays: {},
	SettingShopID:       {},
	SettingTimeout:      {},
	SettingLocale:       {},
	SettingMinQuantity:  {},
	SettingOperator:     {},
}

const DefaultRequestTimeout = 30 * time.Second

// AccountSettings -- типизированное представление карты настроек аккаунта.
type AccountSettings struct {
	Currency     string
	CategoryCode string
	LeadTimeDays int
	ShopID       string
	Locale       string
	MinQuantity  int
	Operator     string
	Timeout      time.Duration
}

// ParseSettings разбирает карту настроек. Вторым значением возвращаются
// предупреждения по нераспознанным ключам.
func ParseSettings(raw map[string]string) (AccountSettings, []string) {
	settings := AccountSettings{
		Timeout: DefaultRequestTimeout,
	}
	var warnings []string

	for key, value := range raw {
		if _, ok := recognizedSettings[key]; !ok {
			warnings = append(warnings, fmt.Sprintf("unrecognized settings key %q", key))
			continue
		}
		switch key {
		case SettingCurrency:
			settings.Currency = value
		case SettingCategoryCode:
			settings.CategoryCode = value
		case SettingShopID:
			settings.ShopID = value
		case SettingLocale:
			settings.Locale = value
		case SettingOperator:
			settings.Operator = value
		case SettingLeadTimeDays:
			if days, err := strconv.Atoi(value); err == nil {
				settings.LeadTimeDays = days
			} else {
				warnings = append(warnings, fmt.Sprintf("invalid value %q for %s", value, key))
			}
		case SettingMinQuantity:
			if qty, err := strconv.Atoi(value); err == nil {
				settings.MinQuantity = qty
			} else {
				warnings = append(warnings, fmt.Sprintf("invalid value %q for %s", value, key))
			}
		case SettingTimeout:
			if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
				settings.Timeout = time.Duration(seconds) * time.Second
			} else {
				warnings = append(warnings, fmt.Sprintf("invalid value %q for %s", value, key))
			}
		}
	}

	return settings, warnings
}
