package notifications

import "log"

// mockTransport logs the code instead of delivering it and always succeeds.
type mockTransport struct {
	channel string
}

func (m mockTransport) deliver(to, code string) error {
	log.Printf("[MOCK %s] To: %s, Code: %s", m.channel, to, code)
	return nil
}
