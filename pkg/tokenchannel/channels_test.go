package tokenchannel

import "testing"

func TestParseChannel(t *testing.T) {
	cases := []struct {
		in      string
		want    ChannelType
		wantErr bool
	}{
		{"sms", ChannelSMS, false},
		{"SMS", ChannelSMS, false},
		{" Whatsapp ", ChannelWhatsapp, false},
		{"voice", ChannelVoice, false},
		{"telegram", ChannelTelegram, false},
		{"email", ChannelEmail, false},
		{"pigeon", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseChannel(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseChannel(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseChannel(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseChannel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
