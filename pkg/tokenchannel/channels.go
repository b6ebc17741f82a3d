package tokenchannel

import (
	"fmt"
	"strings"
)

// ChannelType identifies the delivery channel a challenge token is sent over.
// The wire value is the lowercase channel name used in the request path.
type ChannelType string

const (
	ChannelSMS      ChannelType = "sms"
	ChannelVoice    ChannelType = "voice"
	ChannelWhatsapp ChannelType = "whatsapp"
	ChannelTelegram ChannelType = "telegram"
	ChannelEmail    ChannelType = "email"
)

// ParseChannel maps a channel name to its ChannelType, case-insensitively.
func ParseChannel(s string) (ChannelType, error) {
	switch ChannelType(strings.ToLower(strings.TrimSpace(s))) {
	case ChannelSMS:
		return ChannelSMS, nil
	case ChannelVoice:
		return ChannelVoice, nil
	case ChannelWhatsapp:
		return ChannelWhatsapp, nil
	case ChannelTelegram:
		return ChannelTelegram, nil
	case ChannelEmail:
		return ChannelEmail, nil
	}
	return "", fmt.Errorf("unknown channel %q", s)
}

func (c ChannelType) String() string { return string(c) }
