package channels

import "fmt"

// Channel -- известный канал продаж. Неизвестные значения отсекаются
// на этапе разбора, до любых сетевых вызовов.
type Channel string

const (
	ChannelStorefront    Channel = "storefront"
	ChannelAuction       Channel = "auction"
	ChannelMultiOperator Channel = "multioperator"
	ChannelOperatorREST  Channel = "operator-rest"
)

var knownChannels = map[Channel]struct{}{
	ChannelStorefront:    {},
	ChannelAuction:       {},
	ChannelMultiOperator: {},
	ChannelOperatorREST:  {},
}

func (c Channel) String() string {
	return string(c)
}

func (c Channel) Known() bool {
	_, ok := knownChannels[c]
	return ok
}

// ParseChannel разбирает имя канала. Имя вне известного набора -- ошибка конфигурации.
func ParseChannel(name string) (Channel, error) {
	c := Channel(name)
	if !c.Known() {
		return "", fmt.Errorf("unsupported channel %q", name)
	}
	return c, nil
}
